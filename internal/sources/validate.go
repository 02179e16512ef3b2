package sources

import (
	"fmt"
	"strings"

	"github.com/azure/newsroom-desk/internal/models"
)

// ValidateEvents rejects collections the desk cannot serve: every event needs
// a unique id, known enum values and scores within range
func ValidateEvents(events []models.Event) error {
	seen := make(map[string]bool, len(events))

	for i, event := range events {
		if strings.TrimSpace(event.ID) == "" {
			return fmt.Errorf("event at index %d has no id", i)
		}
		if seen[event.ID] {
			return fmt.Errorf("duplicate event id %s", event.ID)
		}
		seen[event.ID] = true

		if err := ValidateEvent(event); err != nil {
			return err
		}
	}

	return nil
}

// ValidateEvent checks a single event's fields
func ValidateEvent(event models.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("event %s has no title", event.ID)
	}
	if !event.Sentiment.Valid() {
		return fmt.Errorf("event %s has unknown sentiment %q", event.ID, event.Sentiment)
	}
	if !event.RiskLevel.Valid() {
		return fmt.Errorf("event %s has unknown risk level %q", event.ID, event.RiskLevel)
	}
	if !event.Priority.Valid() {
		return fmt.Errorf("event %s has unknown priority %q", event.ID, event.Priority)
	}

	scores := map[string]int{
		"reliability":   event.Reliability,
		"impactScore":   event.ImpactScore,
		"coverageScore": event.CoverageScore,
	}
	for name, value := range scores {
		if value < 0 || value > 100 {
			return fmt.Errorf("event %s has %s %d outside 0-100", event.ID, name, value)
		}
	}

	if event.FreshnessMinutes < 0 {
		return fmt.Errorf("event %s has negative freshness %d", event.ID, event.FreshnessMinutes)
	}

	for _, article := range event.Articles {
		if strings.TrimSpace(article.Outlet) == "" {
			return fmt.Errorf("event %s: article %s has no outlet", event.ID, article.ID)
		}
		if !article.Tone.Valid() {
			return fmt.Errorf("event %s: article %s has unknown tone %q", event.ID, article.ID, article.Tone)
		}
	}

	return nil
}
