package models

import "fmt"

// Timeframe is the maximum event age a filter accepts
type Timeframe string

const (
	Timeframe1h  Timeframe = "1h"
	Timeframe6h  Timeframe = "6h"
	Timeframe24h Timeframe = "24h"
	Timeframe7d  Timeframe = "7d"
)

var timeframeLimits = map[Timeframe]int{
	Timeframe1h:  60,
	Timeframe6h:  360,
	Timeframe24h: 1440,
	Timeframe7d:  10080,
}

// ThresholdMinutes returns the maximum freshness in minutes for the timeframe.
// Unknown timeframes admit nothing but events updated this minute.
func (t Timeframe) ThresholdMinutes() int {
	return timeframeLimits[t]
}

// Valid reports whether t is one of the known timeframes
func (t Timeframe) Valid() bool {
	_, ok := timeframeLimits[t]
	return ok
}

// FilterAll disables the sentiment or risk dimension of a filter
const FilterAll = "all"

// FilterState is the desk's filter panel state
type FilterState struct {
	Timeframe    Timeframe `json:"timeframe"`
	Categories   []string  `json:"categories"`
	Regions      []string  `json:"regions"`
	Sentiment    string    `json:"sentiment"` // "all" or a Sentiment
	Risk         string    `json:"risk"`      // "all" or a RiskLevel
	Sources      []string  `json:"sources"`
	Query        string    `json:"query"`
	OnlyPriority bool      `json:"onlyPriority"`
}

// DefaultFilterState is the state a fresh desk starts with
func DefaultFilterState() FilterState {
	return FilterState{
		Timeframe:  Timeframe6h,
		Categories: []string{},
		Regions:    []string{},
		Sentiment:  FilterAll,
		Risk:       FilterAll,
		Sources:    []string{},
	}
}

// FilterPatch is a partial FilterState; nil fields are left untouched
type FilterPatch struct {
	Timeframe    *Timeframe `json:"timeframe,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	Regions      []string   `json:"regions,omitempty"`
	Sentiment    *string    `json:"sentiment,omitempty"`
	Risk         *string    `json:"risk,omitempty"`
	Sources      []string   `json:"sources,omitempty"`
	Query        *string    `json:"query,omitempty"`
	OnlyPriority *bool      `json:"onlyPriority,omitempty"`
}

// Validate rejects enum values the filter engine does not know
func (p FilterPatch) Validate() error {
	if p.Timeframe != nil && !p.Timeframe.Valid() {
		return fmt.Errorf("unknown timeframe %q", *p.Timeframe)
	}
	if p.Sentiment != nil && *p.Sentiment != FilterAll && !Sentiment(*p.Sentiment).Valid() {
		return fmt.Errorf("unknown sentiment %q", *p.Sentiment)
	}
	if p.Risk != nil && *p.Risk != FilterAll && !RiskLevel(*p.Risk).Valid() {
		return fmt.Errorf("unknown risk level %q", *p.Risk)
	}
	return nil
}

// Apply merges the patch into a copy of s. The result shares no slices with
// either s or p.
func (s FilterState) Apply(p FilterPatch) FilterState {
	next := s.clone()

	if p.Timeframe != nil {
		next.Timeframe = *p.Timeframe
	}
	if p.Categories != nil {
		next.Categories = cloneStrings(p.Categories)
	}
	if p.Regions != nil {
		next.Regions = cloneStrings(p.Regions)
	}
	if p.Sentiment != nil {
		next.Sentiment = *p.Sentiment
	}
	if p.Risk != nil {
		next.Risk = *p.Risk
	}
	if p.Sources != nil {
		next.Sources = cloneStrings(p.Sources)
	}
	if p.Query != nil {
		next.Query = *p.Query
	}
	if p.OnlyPriority != nil {
		next.OnlyPriority = *p.OnlyPriority
	}

	return next
}

func (s FilterState) clone() FilterState {
	s.Categories = cloneStrings(s.Categories)
	s.Regions = cloneStrings(s.Regions)
	s.Sources = cloneStrings(s.Sources)
	return s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Facets holds the option values offered by the filter panel
type Facets struct {
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
	Sources    []string `json:"sources"`
}
