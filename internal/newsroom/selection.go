package newsroom

import "github.com/azure/newsroom-desk/internal/models"

// ReconcileSelection repairs a selection after the filtered view changed.
// The empty id means nothing is selected.
func ReconcileSelection(selectedID string, filtered []models.Event) string {
	if len(filtered) == 0 {
		return ""
	}
	if indexOf(filtered, selectedID) < 0 {
		return filtered[0].ID
	}
	return selectedID
}

// DisplayedEvent returns the event the detail view should show: the selected
// one when visible, otherwise the first visible event, otherwise nil
func DisplayedEvent(filtered []models.Event, selectedID string) *models.Event {
	if len(filtered) == 0 {
		return nil
	}
	idx := indexOf(filtered, selectedID)
	if idx < 0 {
		idx = 0
	}
	event := filtered[idx]
	return &event
}

func indexOf(events []models.Event, id string) int {
	if id == "" {
		return -1
	}
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
