package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/notifications"
	"github.com/azure/newsroom-desk/internal/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const topOutletLimit = 5

// EventProvider exposes the full event collection a digest is built from
type EventProvider interface {
	Events() []models.Event
}

// Service builds, archives and distributes newsroom digests
type Service struct {
	config              *config.Config
	events              EventProvider
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	presets             []models.DistributionPreset
	metrics             *Metrics
	alerted             map[string]bool
	now                 func() time.Time
	mu                  sync.RWMutex
}

// Metrics holds digest run statistics
type Metrics struct {
	TotalEvents        int            `json:"total_events"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	CategoryBreakdown  map[string]int `json:"category_breakdown"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	DigestsSent        int            `json:"digests_sent"`
	AlertsSent         int            `json:"alerts_sent"`
	ErrorCount         int            `json:"error_count"`
}

// NewService creates a new digest service
func NewService(cfg *config.Config, events EventProvider, storage storage.StorageInterface, notificationService notifications.NotificationInterface, presets []models.DistributionPreset) *Service {
	return &Service{
		config:              cfg,
		events:              events,
		storage:             storage,
		notificationService: notificationService,
		presets:             presets,
		metrics: &Metrics{
			CategoryBreakdown:  make(map[string]int),
			SentimentBreakdown: make(map[string]int),
		},
		alerted: make(map[string]bool),
		now:     time.Now,
	}
}

// RunDigest filters the collection for the digest window, archives the
// result and sends it through the configured channels
func (s *Service) RunDigest(ctx context.Context) error {
	start := time.Now()
	logrus.WithFields(logrus.Fields{
		"timeframe":     s.config.DigestTimeframe,
		"only_priority": s.config.DigestOnlyPriority,
		"preset":        s.config.DigestPreset,
	}).Info("Starting digest run")

	state := models.DefaultFilterState()
	state.Timeframe = s.config.DigestTimeframe
	state.OnlyPriority = s.config.DigestOnlyPriority

	events := newsroom.FilterEvents(s.events.Events(), state)
	logrus.Infof("Selected %d events for digest", len(events))

	digest := s.GenerateDigest(events)

	if err := s.archive(ctx, "digest", uuid.NewString(), digest); err != nil {
		logrus.Errorf("Failed to archive digest: %v", err)
		s.recordError()
		return err
	}

	if err := s.notificationService.SendDigest(digest); err != nil {
		logrus.Errorf("Failed to send digest: %v", err)
		s.recordError()
		return err
	}

	s.updateMetrics(events, time.Since(start))

	logrus.Infof("Digest run completed in %v", time.Since(start))
	return nil
}

// GenerateDigest summarises events for the configured preset
func (s *Service) GenerateDigest(events []models.Event) *models.Digest {
	if events == nil {
		events = []models.Event{}
	}

	digest := &models.Digest{
		GeneratedAt: s.now(),
		Preset:      s.preset(),
		Timeframe:   s.config.DigestTimeframe,
		TotalEvents: len(events),
		Events:      events,
		Summary:     make(map[string]interface{}),
	}

	categoryCount := make(map[string]int)
	sentimentCount := make(map[string]int)
	outletCount := make(map[string]int)

	for _, event := range events {
		categoryCount[event.Category]++
		sentimentCount[string(event.Sentiment)]++
		for _, article := range event.Articles {
			outletCount[article.Outlet]++
		}
	}

	digest.Summary["categories"] = categoryCount
	digest.Summary["sentiment"] = sentimentCount
	digest.Summary["top_outlets"] = topOutlets(outletCount)

	return digest
}

func (s *Service) preset() *models.DistributionPreset {
	for i := range s.presets {
		if s.presets[i].ID == s.config.DigestPreset {
			preset := s.presets[i]
			return &preset
		}
	}
	return nil
}

// topOutlets ranks outlets by article count, breaking ties by name
func topOutlets(outletCount map[string]int) []string {
	type outletScore struct {
		outlet string
		count  int
	}

	scores := make([]outletScore, 0, len(outletCount))
	for outlet, count := range outletCount {
		scores = append(scores, outletScore{outlet, count})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].count != scores[j].count {
			return scores[i].count > scores[j].count
		}
		return scores[i].outlet < scores[j].outlet
	})

	top := []string{}
	for i, score := range scores {
		if i >= topOutletLimit {
			break
		}
		top = append(top, fmt.Sprintf("%s (%d)", score.outlet, score.count))
	}

	return top
}

// RunUrgentCheck alerts on high-priority, high-risk events inside the urgent
// window. Each event alerts at most once for the life of the service.
func (s *Service) RunUrgentCheck(ctx context.Context) error {
	start := time.Now()
	logrus.Infof("Starting urgent check (%s window)", s.config.UrgentTimeframe)

	state := models.DefaultFilterState()
	state.Timeframe = s.config.UrgentTimeframe
	state.OnlyPriority = true

	urgent := s.filterUrgentEvents(newsroom.FilterEvents(s.events.Events(), state))
	if len(urgent) == 0 {
		logrus.Info("No new urgent events found")
		return nil
	}

	logrus.Infof("Found %d urgent events requiring immediate notification", len(urgent))

	var failed int
	for i := range urgent {
		event := urgent[i]
		alert := &models.Alert{
			ID:        uuid.NewString(),
			Type:      "urgent",
			Title:     fmt.Sprintf("URGENT: %s", event.Title),
			Message:   fmt.Sprintf("%s event with %s risk, reliability %d%%, updated %dm ago", event.Category, event.RiskLevel, event.Reliability, event.FreshnessMinutes),
			Event:     &event,
			CreatedAt: s.now(),
		}

		if err := s.archive(ctx, "alert", alert.ID, alert); err != nil {
			logrus.Errorf("Failed to archive alert for %s: %v", event.ID, err)
		}

		if err := s.notificationService.SendAlert(alert); err != nil {
			logrus.WithField("event", event.ID).Errorf("Failed to send urgent alert: %v", err)
			failed++
			s.recordError()
			continue
		}

		s.markAlerted(event.ID)
	}

	if failed > 0 {
		return fmt.Errorf("failed to send %d of %d urgent alerts", failed, len(urgent))
	}

	logrus.Infof("Urgent check completed in %v, sent %d urgent alerts", time.Since(start), len(urgent))
	return nil
}

// filterUrgentEvents keeps high-priority, high-risk events not yet alerted
func (s *Service) filterUrgentEvents(events []models.Event) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var urgent []models.Event
	for _, event := range events {
		if isUrgentEvent(event) && !s.alerted[event.ID] {
			urgent = append(urgent, event)
		}
	}
	return urgent
}

func isUrgentEvent(event models.Event) bool {
	return event.Priority == models.RiskHigh && event.RiskLevel == models.RiskHigh
}

func (s *Service) markAlerted(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerted[id] = true
	s.metrics.AlertsSent++
}

// archive stores v as <kind>-<timestamp>-<id>.json; the timestamp keeps
// names in chronological order and the id keeps them unique within a second
func (s *Service) archive(ctx context.Context, kind, id string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	name := fmt.Sprintf("%s-%s-%s.json", kind, s.now().UTC().Format("2006-01-02-15-04-05"), id)
	return s.storage.Store(ctx, name, data)
}

func (s *Service) updateMetrics(events []models.Event, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.TotalEvents = len(events)
	s.metrics.LastRun = s.now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.DigestsSent++

	s.metrics.CategoryBreakdown = make(map[string]int)
	s.metrics.SentimentBreakdown = make(map[string]int)
	for _, event := range events {
		s.metrics.CategoryBreakdown[event.Category]++
		s.metrics.SentimentBreakdown[string(event.Sentiment)]++
	}
}

func (s *Service) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ErrorCount++
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
