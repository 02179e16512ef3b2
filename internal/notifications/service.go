package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/azure/newsroom-desk/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

const (
	teamsHighlights = 5
	emailHighlights = 10
)

// Service handles sending notifications via various channels
type Service struct {
	config *config.Config
	client *resty.Client
	dialer interface {
		DialAndSend(m ...*gomail.Message) error
	}
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message card
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendDigest sends a digest via configured notification channels
func (s *Service) SendDigest(digest *models.Digest) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsDigest(digest)); err != nil {
			logrus.Errorf("Failed to send Teams digest: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent digest to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendDigestEmail(digest); err != nil {
			logrus.Errorf("Failed to send digest email: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent digest via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert sends an urgent alert about a single event
func (s *Service) SendAlert(alert *models.Alert) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsAlert(alert)); err != nil {
			logrus.Errorf("Failed to send Teams alert: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		}
	}

	if s.config.NotificationEmail != "" {
		m := gomail.NewMessage()
		m.SetHeader("From", s.config.SMTPUsername)
		m.SetHeader("To", s.config.NotificationEmail)
		m.SetHeader("Subject", fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Type), alert.Title))
		m.SetBody("text/plain", buildAlertText(alert))

		if err := s.dialer.DialAndSend(m); err != nil {
			logrus.Errorf("Failed to send alert email: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	logrus.WithField("alert", alert.ID).Infof("Alert sent: %s", alert.Title)
	return nil
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsDigest(digest *models.Digest) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   digestTitle(digest),
		Text:    fmt.Sprintf("%d events in the last %s", digest.TotalEvents, digest.Timeframe),
	}

	facts := []TeamsFact{
		{Name: "Total Events", Value: fmt.Sprintf("%d", digest.TotalEvents)},
		{Name: "Generated", Value: digest.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
	}
	if digest.Preset != nil {
		facts = append(facts,
			TeamsFact{Name: "Format", Value: digest.Preset.Format},
			TeamsFact{Name: "Tone", Value: digest.Preset.Tone},
		)
	}
	if sentiment, ok := digest.Summary["sentiment"].(map[string]int); ok {
		for _, key := range sortedKeys(sentiment) {
			facts = append(facts, TeamsFact{
				Name:  fmt.Sprintf("%s Events", titleCase(key)),
				Value: fmt.Sprintf("%d", sentiment[key]),
			})
		}
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(digest.Events) > 0 {
		var highlights []string
		for i, event := range digest.Events {
			if i >= teamsHighlights {
				break
			}
			highlights = append(highlights, fmt.Sprintf("**%s** - %s | priority %s | reliability %d%%",
				event.Title, event.Category, event.Priority, event.Reliability))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Top Events",
			ActivityText:  strings.Join(highlights, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) buildTeamsAlert(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "D13438",
		Title:      alert.Title,
		Text:       alert.Message,
	}

	if alert.Event != nil {
		message.Sections = []TeamsSection{{
			ActivityTitle:    alert.Event.Title,
			ActivitySubtitle: alert.Event.Category,
			Facts: []TeamsFact{
				{Name: "Risk", Value: string(alert.Event.RiskLevel)},
				{Name: "Reliability", Value: fmt.Sprintf("%d%%", alert.Event.Reliability)},
				{Name: "Updated", Value: fmt.Sprintf("%dm ago", alert.Event.FreshnessMinutes)},
				{Name: "Sources", Value: fmt.Sprintf("%d", len(alert.Event.Articles))},
			},
			Markdown: true,
		}}
	}

	return message
}

func (s *Service) sendDigestEmail(digest *models.Digest) error {
	subject := fmt.Sprintf("%s (%d events)", digestTitle(digest), digest.TotalEvents)

	htmlBody, err := buildDigestHTML(digest)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", buildDigestText(digest))
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"title":    titleCase,
	"truncate": truncate,
}).Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Newsroom Digest</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #1f3a5f; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .event { border-left: 4px solid #1f3a5f; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .event-title { font-weight: bold; margin-bottom: 5px; }
        .event-meta { color: #666; font-size: 0.9em; }
        .positive { border-left-color: #107c10; }
        .negative { border-left-color: #d13438; }
        .neutral { border-left-color: #605e5c; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Newsroom Digest</h1>
        <p>{{if .Preset}}{{.Preset.Format}} | {{end}}last {{.Timeframe}}, generated {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM MST"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Events:</strong> {{.TotalEvents}}</p>
        {{range $sentiment, $count := .Summary.sentiment}}
            <p><strong>{{$sentiment | title}}:</strong> {{$count}}</p>
        {{end}}
    </div>

    {{range $index, $event := .Events}}
        {{if lt $index 10}}
        <div class="event {{$event.Sentiment}}">
            <div class="event-title">{{$event.Title}}</div>
            <div class="event-meta">
                {{$event.Category}} | priority {{$event.Priority}} | risk {{$event.RiskLevel}} | reliability {{$event.Reliability}}% | {{len $event.Articles}} sources
            </div>
            <p>{{truncate $event.Summary 200}}</p>
        </div>
        {{end}}
    {{end}}

    <hr>
    <p><small>This digest was generated automatically by the newsroom desk.</small></p>
</body>
</html>
`))

func buildDigestHTML(digest *models.Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digest); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildDigestText(digest *models.Digest) string {
	var text strings.Builder

	text.WriteString(digestTitle(digest) + "\n")
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", digest.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Events: %d\n", digest.TotalEvents))

	if sentiment, ok := digest.Summary["sentiment"].(map[string]int); ok {
		for _, key := range sortedKeys(sentiment) {
			text.WriteString(fmt.Sprintf("%s: %d\n", titleCase(key), sentiment[key]))
		}
	}

	if len(digest.Events) > 0 {
		text.WriteString("\nEVENTS\n")
		text.WriteString("======\n")

		for i, event := range digest.Events {
			if i >= emailHighlights {
				break
			}
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, event.Title))
			text.WriteString(fmt.Sprintf("   Category: %s | Priority: %s | Risk: %s | Reliability: %d%%\n",
				event.Category, event.Priority, event.RiskLevel, event.Reliability))
			if event.Summary != "" {
				text.WriteString(fmt.Sprintf("   %s\n", truncate(event.Summary, 200)))
			}
		}
	}

	text.WriteString("\n---\nThis digest was generated automatically by the newsroom desk.\n")

	return text.String()
}

func buildAlertText(alert *models.Alert) string {
	var text strings.Builder
	text.WriteString(alert.Message + "\n")
	if alert.Event != nil {
		text.WriteString(fmt.Sprintf("\n%s\n%s\n", alert.Event.Title, alert.Event.Summary))
		for _, action := range alert.Event.RecommendedActions {
			text.WriteString(fmt.Sprintf(" - %s\n", action))
		}
	}
	return text.String()
}

func digestTitle(digest *models.Digest) string {
	if digest.Preset != nil {
		return fmt.Sprintf("Newsroom Digest - %s", digest.Preset.Channel)
	}
	return "Newsroom Digest"
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncate shortens s to length runes
func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
