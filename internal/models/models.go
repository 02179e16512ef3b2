package models

import "time"

// Sentiment is the overall tone of an event or article
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known sentiments
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// RiskLevel is used for both risk and priority classification
type RiskLevel string

const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// Valid reports whether r is one of the known levels
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskHigh, RiskMedium, RiskLow:
		return true
	}
	return false
}

// Article represents one outlet's coverage of an event
type Article struct {
	ID          string    `json:"id"`
	Outlet      string    `json:"outlet"`
	Headline    string    `json:"headline"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Tone        Sentiment `json:"tone"`
	Viewpoint   string    `json:"viewpoint"`
}

// Event represents a clustered news story with its underlying articles
type Event struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Summary            string    `json:"summary"`
	AISummary          string    `json:"aiSummary"`
	Category           string    `json:"category"`
	Tags               []string  `json:"tags"`
	Regions            []string  `json:"regions"`
	Sentiment          Sentiment `json:"sentiment"`
	RiskLevel          RiskLevel `json:"riskLevel"`
	Reliability        int       `json:"reliability"`
	ImpactScore        int       `json:"impactScore"`
	CoverageScore      int       `json:"coverageScore"`
	FreshnessMinutes   int       `json:"freshnessMinutes"` // minutes since the latest update
	Priority           RiskLevel `json:"priority"`
	Articles           []Article `json:"articles"`
	RecommendedActions []string  `json:"recommendedActions"`
	DistributionNotes  string    `json:"distributionNotes"`
}

// TrendInsight is a sidebar trend widget entry
type TrendInsight struct {
	ID        string `json:"id" yaml:"id"`
	Topic     string `json:"topic" yaml:"topic"`
	Delta     int    `json:"delta" yaml:"delta"`
	Momentum  string `json:"momentum" yaml:"momentum"` // "rising", "stable", "falling"
	Volume    int    `json:"volume" yaml:"volume"`
	Coverage  int    `json:"coverage" yaml:"coverage"`
	Highlight string `json:"highlight" yaml:"highlight"`
}

// DistributionPreset describes how a channel receives newsroom output
type DistributionPreset struct {
	ID         string `json:"id" yaml:"id"`
	Channel    string `json:"channel" yaml:"channel"`
	Format     string `json:"format" yaml:"format"`
	Cadence    string `json:"cadence" yaml:"cadence"`
	Tone       string `json:"tone" yaml:"tone"`
	Automation string `json:"automation" yaml:"automation"`
}

// MarketPlugin is a plugin marketplace listing
type MarketPlugin struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Vendor       string   `json:"vendor" yaml:"vendor"`
	Category     string   `json:"category" yaml:"category"` // "analysis", "content", "ai-assistant", "connector"
	APIEndpoint  string   `json:"apiEndpoint" yaml:"apiEndpoint"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
	Status       string   `json:"status" yaml:"status"` // "certified" or "beta"
}

// Dataset is everything the desk is seeded with at startup
type Dataset struct {
	Events  []Event              `json:"events"`
	Trends  []TrendInsight       `json:"trends"`
	Presets []DistributionPreset `json:"presets"`
	Plugins []MarketPlugin       `json:"plugins"`
}

// Digest represents a scheduled summary of events for a distribution preset
type Digest struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Preset      *DistributionPreset    `json:"preset,omitempty"`
	Timeframe   Timeframe              `json:"timeframe"`
	TotalEvents int                    `json:"total_events"`
	Events      []Event                `json:"events"`
	Summary     map[string]interface{} `json:"summary"`
}

// Alert represents an urgent notification about a single event
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "critical", "urgent", "info"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Event     *Event    `json:"event,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
