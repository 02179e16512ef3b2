package newsroom

import (
	"strings"

	"github.com/azure/newsroom-desk/internal/models"
)

// FilterEvents returns the events that pass every active filter dimension,
// in their original order
func FilterEvents(events []models.Event, state models.FilterState) []models.Event {
	filtered := make([]models.Event, 0, len(events))

	for _, event := range events {
		if matchesFilters(event, state) {
			filtered = append(filtered, event)
		}
	}

	return filtered
}

// matchesFilters rejects early on each structured dimension; the free-text
// query is evaluated last and its result is returned directly.
func matchesFilters(event models.Event, state models.FilterState) bool {
	if state.OnlyPriority && event.Priority != models.RiskHigh {
		return false
	}

	if event.FreshnessMinutes > state.Timeframe.ThresholdMinutes() {
		return false
	}

	if len(state.Categories) > 0 && !containsString(state.Categories, event.Category) {
		return false
	}

	if len(state.Regions) > 0 && !anyContained(event.Regions, state.Regions) {
		return false
	}

	if len(state.Sources) > 0 && !hasOutlet(event.Articles, state.Sources) {
		return false
	}

	if state.Sentiment != models.FilterAll && string(event.Sentiment) != state.Sentiment {
		return false
	}

	if state.Risk != models.FilterAll && string(event.RiskLevel) != state.Risk {
		return false
	}

	if keyword := strings.ToLower(strings.TrimSpace(state.Query)); keyword != "" {
		return strings.Contains(searchText(event), keyword)
	}

	return true
}

func searchText(event models.Event) string {
	parts := make([]string, 0, len(event.Tags)+2)
	parts = append(parts, event.Title, event.Summary)
	parts = append(parts, event.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func hasOutlet(articles []models.Article, outlets []string) bool {
	for _, article := range articles {
		if containsString(outlets, article.Outlet) {
			return true
		}
	}
	return false
}

func anyContained(values, set []string) bool {
	for _, value := range values {
		if containsString(set, value) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

// CollectFacets lists the distinct categories, regions and outlets of the
// collection in first-seen order
func CollectFacets(events []models.Event) models.Facets {
	facets := models.Facets{
		Categories: []string{},
		Regions:    []string{},
		Sources:    []string{},
	}
	seen := map[string]map[string]bool{
		"category": {},
		"region":   {},
		"source":   {},
	}

	add := func(kind, value string, dst *[]string) {
		if value == "" || seen[kind][value] {
			return
		}
		seen[kind][value] = true
		*dst = append(*dst, value)
	}

	for _, event := range events {
		add("category", event.Category, &facets.Categories)
		for _, region := range event.Regions {
			add("region", region, &facets.Regions)
		}
		for _, article := range event.Articles {
			add("source", article.Outlet, &facets.Sources)
		}
	}

	return facets
}
