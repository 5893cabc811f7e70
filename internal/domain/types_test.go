package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityLabels_Bijective(t *testing.T) {
	labels := PriorityLabels()
	require.Len(t, labels, 5)

	seen := make(map[string]bool)
	for code := PriorityNone; code <= PriorityUrgent; code++ {
		label, ok := PriorityLabel(code)
		require.True(t, ok, "code %d should be mapped", code)
		assert.False(t, seen[label], "label %q mapped twice", label)
		seen[label] = true

		back, ok := PriorityCode(label)
		require.True(t, ok)
		assert.Equal(t, code, back)
	}

	_, ok := PriorityLabel(9)
	assert.False(t, ok)
	_, ok = PriorityCode("Critical")
	assert.False(t, ok)
}

func TestStatusSet(t *testing.T) {
	assert.Equal(t, []string{"Backlog", "Todo", "In progress", "Done", "Cancelled"}, StatusSet)
	assert.True(t, IsStatus("In progress"))
	assert.False(t, IsStatus("In Progress"))
	assert.False(t, IsStatus(""))
}

func TestParseGrouping(t *testing.T) {
	for _, g := range Groupings {
		parsed, err := ParseGrouping(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, parsed)
	}

	_, err := ParseGrouping("assignee")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestParseSorting(t *testing.T) {
	for _, s := range Sortings {
		parsed, err := ParseSorting(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseSorting("")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}

func TestUsers_Find(t *testing.T) {
	users := Users{
		{ID: "usr-1", Name: "Anoop sharma"},
		{ID: "usr-2", Name: "Yogesh"},
		{ID: "usr-1", Name: "Duplicate"},
	}

	user, ok := users.Find("usr-1")
	require.True(t, ok)
	assert.Equal(t, "Anoop sharma", user.Name, "first match wins")

	_, ok = users.Find("usr-9")
	assert.False(t, ok)

	user, ok = users.FindByName("Yogesh")
	require.True(t, ok)
	assert.Equal(t, "usr-2", user.ID)
}

func TestTicket_UnmarshalPriority(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"number", `{"priority":3}`, PriorityHigh},
		{"numeric string", `{"priority":"4"}`, PriorityUrgent},
		{"padded string", `{"priority":" 1 "}`, PriorityLow},
		{"integral float", `{"priority":2.0}`, PriorityMedium},
		{"missing", `{}`, PriorityNone},
		{"null", `{"priority":null}`, PriorityNone},
		{"fraction", `{"priority":2.5}`, PriorityUnmapped},
		{"word", `{"priority":"urgent"}`, PriorityUnmapped},
		{"bool", `{"priority":true}`, PriorityUnmapped},
		{"object", `{"priority":{"level":4}}`, PriorityUnmapped},
		{"out of range", `{"priority":1e20}`, PriorityUnmapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ticket Ticket
			require.NoError(t, json.Unmarshal([]byte(tt.json), &ticket))
			assert.Equal(t, tt.want, ticket.Priority)
		})
	}
}

func TestTicket_UnmarshalKeepsOtherFields(t *testing.T) {
	var ticket Ticket
	err := json.Unmarshal([]byte(`{"id":"CAM-5","title":"T","tag":["a"],"status":"Done","priority":"2","userId":"usr-3"}`), &ticket)
	require.NoError(t, err)

	assert.Equal(t, Ticket{ID: "CAM-5", Title: "T", Tag: []string{"a"}, Status: "Done", Priority: 2, UserID: "usr-3"}, ticket)

	// Structural errors still fail
	assert.Error(t, json.Unmarshal([]byte(`{"id":5}`), &ticket))
}
