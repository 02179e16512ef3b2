package sources

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/newsroom.yaml
var embeddedFixture []byte

// FixtureSource serves the static seed dataset, either the embedded fixture
// or a YAML file with the same layout
type FixtureSource struct {
	path string
	now  func() time.Time
}

var _ Source = (*FixtureSource)(nil)

type fixtureFile struct {
	Events  []fixtureEvent              `yaml:"events"`
	Trends  []models.TrendInsight       `yaml:"trends"`
	Presets []models.DistributionPreset `yaml:"presets"`
	Plugins []models.MarketPlugin       `yaml:"plugins"`
}

type fixtureEvent struct {
	ID                 string           `yaml:"id"`
	Title              string           `yaml:"title"`
	Summary            string           `yaml:"summary"`
	AISummary          string           `yaml:"aiSummary"`
	Category           string           `yaml:"category"`
	Tags               []string         `yaml:"tags"`
	Regions            []string         `yaml:"regions"`
	Sentiment          models.Sentiment `yaml:"sentiment"`
	RiskLevel          models.RiskLevel `yaml:"riskLevel"`
	Reliability        int              `yaml:"reliability"`
	ImpactScore        int              `yaml:"impactScore"`
	CoverageScore      int              `yaml:"coverageScore"`
	FreshnessMinutes   int              `yaml:"freshnessMinutes"`
	Priority           models.RiskLevel `yaml:"priority"`
	Articles           []fixtureArticle `yaml:"articles"`
	RecommendedActions []string         `yaml:"recommendedActions"`
	DistributionNotes  string           `yaml:"distributionNotes"`
}

type fixtureArticle struct {
	ID           string           `yaml:"id"`
	Outlet       string           `yaml:"outlet"`
	Headline     string           `yaml:"headline"`
	URL          string           `yaml:"url"`
	PublishedAgo string           `yaml:"publishedAgo"`
	Tone         models.Sentiment `yaml:"tone"`
	Viewpoint    string           `yaml:"viewpoint"`
}

// NewFixtureSource creates a fixture source. An empty path selects the
// embedded dataset.
func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{
		path: path,
		now:  time.Now,
	}
}

func (f *FixtureSource) GetName() string {
	if f.path == "" {
		return "fixture:embedded"
	}
	return "fixture:" + f.path
}

func (f *FixtureSource) IsEnabled() bool {
	return true // fixtures need no credentials
}

// FetchDataset parses and validates the fixture
func (f *FixtureSource) FetchDataset(ctx context.Context) (*models.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := embeddedFixture
	if f.path != "" {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", f.path, err)
		}
		raw = data
	}

	dataset, err := ParseDataset(raw, f.now())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", f.GetName(), err)
	}

	logrus.WithFields(logrus.Fields{
		"source":  f.GetName(),
		"events":  len(dataset.Events),
		"trends":  len(dataset.Trends),
		"presets": len(dataset.Presets),
		"plugins": len(dataset.Plugins),
	}).Info("Loaded newsroom dataset")

	return dataset, nil
}

// ParseDataset decodes a YAML fixture, resolving relative article times
// against base, and rejects malformed events
func ParseDataset(raw []byte, base time.Time) (*models.Dataset, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	dataset := &models.Dataset{
		Events:  make([]models.Event, 0, len(file.Events)),
		Trends:  file.Trends,
		Presets: file.Presets,
		Plugins: file.Plugins,
	}

	for _, fe := range file.Events {
		event, err := fe.toEvent(base)
		if err != nil {
			return nil, err
		}
		dataset.Events = append(dataset.Events, event)
	}

	if err := ValidateEvents(dataset.Events); err != nil {
		return nil, err
	}

	return dataset, nil
}

func (fe fixtureEvent) toEvent(base time.Time) (models.Event, error) {
	articles := make([]models.Article, 0, len(fe.Articles))
	for _, fa := range fe.Articles {
		publishedAt := base
		if fa.PublishedAgo != "" {
			ago, err := time.ParseDuration(fa.PublishedAgo)
			if err != nil {
				return models.Event{}, fmt.Errorf("event %s: article %s: invalid publishedAgo %q: %w", fe.ID, fa.ID, fa.PublishedAgo, err)
			}
			publishedAt = base.Add(-ago)
		}

		articles = append(articles, models.Article{
			ID:          fa.ID,
			Outlet:      fa.Outlet,
			Headline:    fa.Headline,
			URL:         fa.URL,
			PublishedAt: publishedAt,
			Tone:        fa.Tone,
			Viewpoint:   fa.Viewpoint,
		})
	}

	return models.Event{
		ID:                 fe.ID,
		Title:              fe.Title,
		Summary:            fe.Summary,
		AISummary:          fe.AISummary,
		Category:           fe.Category,
		Tags:               nonNil(fe.Tags),
		Regions:            nonNil(fe.Regions),
		Sentiment:          fe.Sentiment,
		RiskLevel:          fe.RiskLevel,
		Reliability:        fe.Reliability,
		ImpactScore:        fe.ImpactScore,
		CoverageScore:      fe.CoverageScore,
		FreshnessMinutes:   fe.FreshnessMinutes,
		Priority:           fe.Priority,
		Articles:           articles,
		RecommendedActions: nonNil(fe.RecommendedActions),
		DistributionNotes:  fe.DistributionNotes,
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
