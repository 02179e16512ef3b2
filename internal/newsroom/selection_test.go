package newsroom

import (
	"testing"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileSelection(t *testing.T) {
	events := sampleEvents()
	view := []models.Event{events[0], events[1]}

	tests := []struct {
		name     string
		selected string
		filtered []models.Event
		expected string
	}{
		{name: "Selection outside view moves to first", selected: "event-3", filtered: view, expected: "event-1"},
		{name: "Visible selection is kept", selected: "event-2", filtered: view, expected: "event-2"},
		{name: "Null selection picks first", selected: "", filtered: view, expected: "event-1"},
		{name: "Empty view clears selection", selected: "event-2", filtered: nil, expected: ""},
		{name: "Empty view with null selection", selected: "", filtered: []models.Event{}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReconcileSelection(tt.selected, tt.filtered))
		})
	}
}

func TestDisplayedEvent(t *testing.T) {
	events := sampleEvents()
	view := []models.Event{events[0], events[1]}

	selected := DisplayedEvent(view, "event-2")
	require.NotNil(t, selected)
	assert.Equal(t, "event-2", selected.ID)

	fallback := DisplayedEvent(view, "event-3")
	require.NotNil(t, fallback)
	assert.Equal(t, "event-1", fallback.ID, "falls back to the first visible event before reconciliation")

	assert.Nil(t, DisplayedEvent(nil, "event-1"))
}
