package newsroom

import (
	"sync"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{
			ID:               "event-1",
			Title:            "Global Semiconductor Supply Chain Reconfiguration",
			Summary:          "Policy announcements signal a move to diversify chip manufacturing.",
			Category:         "Technology",
			Tags:             []string{"Semiconductor", "Geopolitics"},
			Regions:          []string{"North America", "Europe"},
			Sentiment:        models.SentimentNeutral,
			RiskLevel:        models.RiskMedium,
			Reliability:      88,
			FreshnessMinutes: 48,
			Priority:         models.RiskHigh,
			Articles: []models.Article{
				{ID: "a1", Outlet: "Reuters", Headline: "Aligned subsidies", URL: "https://example.com/a1"},
				{ID: "a2", Outlet: "Nikkei Asia", Headline: "ASEAN pitches fabs", URL: "https://example.com/a2"},
				{ID: "a3", Outlet: "Perplexity Discover", Headline: "Construction uptick", URL: "https://example.com/a3"},
			},
		},
		{
			ID:               "event-2",
			Title:            "Breakthrough in Carbon Capture Storage Utilization",
			Summary:          "Startups report an efficiency gain in modular carbon capture units.",
			Category:         "Climate",
			Tags:             []string{"Carbon Capture", "Energy"},
			Regions:          []string{"Global"},
			Sentiment:        models.SentimentPositive,
			RiskLevel:        models.RiskLow,
			Reliability:      93,
			FreshnessMinutes: 25,
			Priority:         models.RiskMedium,
			Articles: []models.Article{
				{ID: "a4", Outlet: "Science Daily", Headline: "Efficiency jump", URL: "https://example.com/a4"},
				{ID: "a5", Outlet: "TechCrunch", Headline: "Consortium raises $120M", URL: "https://example.com/a5"},
			},
		},
		{
			ID:               "event-3",
			Title:            "Regulatory Scrutiny Intensifies on Generative AI Transparency",
			Summary:          "Hearings demand clearer disclosure around training data.",
			Category:         "Policy",
			Tags:             []string{"AI Governance", "Compliance"},
			Regions:          []string{"North America", "Europe"},
			Sentiment:        models.SentimentNegative,
			RiskLevel:        models.RiskHigh,
			Reliability:      81,
			FreshnessMinutes: 110,
			Priority:         models.RiskHigh,
			Articles: []models.Article{
				{ID: "a6", Outlet: "Financial Times", Headline: "Audit trail push", URL: "https://example.com/a6"},
			},
		},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

// manualTimers captures scheduled callbacks so tests decide when they fire
type manualTimers struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (m *manualTimers) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{delay: d, fn: fn}
	m.pending = append(m.pending, timer)
	return timer
}

// fire runs the i-th scheduled callback even if it was stopped, mimicking a
// timer that had already been dequeued when Stop was called
func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	timer := m.pending[i]
	m.mu.Unlock()
	timer.fn()
}

func (m *manualTimers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

type recordingRecorder struct {
	mu        sync.Mutex
	filters   []int
	triggered int
	completed []models.Verdict
	dismissed int
}

func (r *recordingRecorder) RecordFilter(visible int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, visible)
}

func (r *recordingRecorder) RecordFactCheckTriggered() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggered++
}

func (r *recordingRecorder) RecordFactCheckCompleted(v models.Verdict) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, v)
}

func (r *recordingRecorder) RecordFactCheckDismissed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dismissed++
}
