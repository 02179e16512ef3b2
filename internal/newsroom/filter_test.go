package newsroom

import (
	"testing"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFilterEvents(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		name     string
		patch    models.FilterPatch
		expected []string
	}{
		{
			name:     "Default 6h window keeps everything fresh",
			patch:    models.FilterPatch{},
			expected: []string{"event-1", "event-2", "event-3"},
		},
		{
			name:     "1h window drops stale events",
			patch:    models.FilterPatch{Timeframe: tf(models.Timeframe1h)},
			expected: []string{"event-1", "event-2"},
		},
		{
			name:     "Only priority keeps high priority",
			patch:    models.FilterPatch{OnlyPriority: boolPtr(true)},
			expected: []string{"event-1", "event-3"},
		},
		{
			name:     "Category constraint",
			patch:    models.FilterPatch{Categories: []string{"Climate", "Policy"}},
			expected: []string{"event-2", "event-3"},
		},
		{
			name:     "Region overlap",
			patch:    models.FilterPatch{Regions: []string{"Europe", "Antarctica"}},
			expected: []string{"event-1", "event-3"},
		},
		{
			name:     "Source matches any article outlet",
			patch:    models.FilterPatch{Sources: []string{"TechCrunch", "Financial Times"}},
			expected: []string{"event-2", "event-3"},
		},
		{
			name:     "Sentiment",
			patch:    models.FilterPatch{Sentiment: strPtr("positive")},
			expected: []string{"event-2"},
		},
		{
			name:     "Risk matches riskLevel not priority",
			patch:    models.FilterPatch{Risk: strPtr("high")},
			expected: []string{"event-3"},
		},
		{
			name:     "Query is trimmed and case-folded",
			patch:    models.FilterPatch{Query: strPtr("  CARBON ")},
			expected: []string{"event-2"},
		},
		{
			name:     "Query matches tags",
			patch:    models.FilterPatch{Query: strPtr("geopolitics")},
			expected: []string{"event-1"},
		},
		{
			name:     "Query spans joined fields",
			patch:    models.FilterPatch{Query: strPtr("units. carbon")},
			expected: []string{"event-2"},
		},
		{
			name:     "Blank query imposes nothing",
			patch:    models.FilterPatch{Query: strPtr("   ")},
			expected: []string{"event-1", "event-2", "event-3"},
		},
		{
			name: "Dimensions combine with AND",
			patch: models.FilterPatch{
				Regions:      []string{"Europe"},
				OnlyPriority: boolPtr(true),
				Sentiment:    strPtr("neutral"),
			},
			expected: []string{"event-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.DefaultFilterState().Apply(tt.patch)
			result := FilterEvents(events, state)
			assert.Equal(t, tt.expected, ids(result))
		})
	}
}

func TestFilterEvents_PreservesOrderAsSubsequence(t *testing.T) {
	events := sampleEvents()
	// reverse the collection; output must follow input order
	reversed := []models.Event{events[2], events[1], events[0]}

	state := models.DefaultFilterState()
	state.Regions = []string{"Europe"}

	assert.Equal(t, []string{"event-3", "event-1"}, ids(FilterEvents(reversed, state)))
	assert.Equal(t, []string{"event-1", "event-3"}, ids(FilterEvents(events, state)))
}

func TestFilterEvents_TimeframeBoundary(t *testing.T) {
	timeframes := []models.Timeframe{models.Timeframe1h, models.Timeframe6h, models.Timeframe24h, models.Timeframe7d}

	for _, timeframe := range timeframes {
		t.Run(string(timeframe), func(t *testing.T) {
			threshold := timeframe.ThresholdMinutes()
			events := []models.Event{
				{ID: "at", FreshnessMinutes: threshold},
				{ID: "over", FreshnessMinutes: threshold + 1},
			}
			state := models.DefaultFilterState()
			state.Timeframe = timeframe

			assert.Equal(t, []string{"at"}, ids(FilterEvents(events, state)))
		})
	}
}

func TestFilterEvents_EmptyConstraintsAreNeutral(t *testing.T) {
	events := sampleEvents()
	base := models.DefaultFilterState()
	base.Timeframe = models.Timeframe7d

	withEmpty := base.Apply(models.FilterPatch{
		Categories: []string{},
		Regions:    []string{},
		Sources:    []string{},
	})

	assert.Equal(t, ids(FilterEvents(events, base)), ids(FilterEvents(events, withEmpty)))
	assert.Len(t, FilterEvents(events, withEmpty), len(events))
}

func TestFilterEvents_QueryExcludesOtherwiseMatchingEvent(t *testing.T) {
	events := sampleEvents()
	state := models.DefaultFilterState()
	state.Categories = []string{"Technology"}

	assert.Equal(t, []string{"event-1"}, ids(FilterEvents(events, state)))

	state.Query = "quantum"
	assert.Empty(t, FilterEvents(events, state))
}

func TestFilterEvents_EmptyCollection(t *testing.T) {
	result := FilterEvents(nil, models.DefaultFilterState())
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestCollectFacets(t *testing.T) {
	facets := CollectFacets(sampleEvents())

	assert.Equal(t, []string{"Technology", "Climate", "Policy"}, facets.Categories)
	assert.Equal(t, []string{"North America", "Europe", "Global"}, facets.Regions)
	assert.Equal(t, []string{
		"Reuters", "Nikkei Asia", "Perplexity Discover",
		"Science Daily", "TechCrunch", "Financial Times",
	}, facets.Sources)
}

func tf(t models.Timeframe) *models.Timeframe { return &t }
func strPtr(s string) *string                 { return &s }
func boolPtr(b bool) *bool                    { return &b }
