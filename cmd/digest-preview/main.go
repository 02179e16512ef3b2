package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/azure/newsroom-desk/internal/digest"
	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/sources"
	"github.com/joho/godotenv"
)

const outputDir = "preview_output"

// FileStorage writes archived digests to the local output directory
type FileStorage struct{}

func (f *FileStorage) Store(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	fmt.Printf("💾 Saved %s\n", path)
	return nil
}

func (f *FileStorage) Retrieve(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(outputDir, name))
}

// List returns bare names that can be passed back to Retrieve
func (f *FileStorage) List(_ context.Context, prefix string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(outputDir, prefix+"*"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(paths))
	for _, path := range paths {
		names = append(names, filepath.Base(path))
	}
	return names, nil
}

func (f *FileStorage) Delete(_ context.Context, name string) error {
	return os.Remove(filepath.Join(outputDir, name))
}

// TerminalNotifier prints digests and alerts instead of sending them
type TerminalNotifier struct{}

func (t *TerminalNotifier) SendDigest(d *models.Digest) error {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📰 NEWSROOM DIGEST")
	fmt.Println(strings.Repeat("=", 70))
	if d.Preset != nil {
		fmt.Printf("📣 Channel: %s (%s, %s)\n", d.Preset.Channel, d.Preset.Format, d.Preset.Cadence)
	}
	fmt.Printf("🕒 Generated: %s\n", d.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("⏱  Window: %s\n", d.Timeframe)
	fmt.Printf("📈 Total Events: %d\n", d.TotalEvents)

	if categories, ok := d.Summary["categories"].(map[string]int); ok {
		fmt.Println("\n🗂  Categories:")
		for _, name := range sortedKeys(categories) {
			fmt.Printf("   • %-15s %d events\n", name+":", categories[name])
		}
	}

	if sentiment, ok := d.Summary["sentiment"].(map[string]int); ok {
		fmt.Println("\n💭 Sentiment:")
		for _, name := range sortedKeys(sentiment) {
			fmt.Printf("   • %-10s %d events\n", name+":", sentiment[name])
		}
	}

	if outlets, ok := d.Summary["top_outlets"].([]string); ok && len(outlets) > 0 {
		fmt.Printf("\n🏷  Top outlets: %s\n", strings.Join(outlets, ", "))
	}

	fmt.Println("\n📝 Events:")
	for i, event := range d.Events {
		fmt.Printf("\n   %d. %s\n", i+1, event.Title)
		fmt.Printf("      %s | priority %s | risk %s | reliability %d%% | %dm ago\n",
			event.Category, event.Priority, event.RiskLevel, event.Reliability, event.FreshnessMinutes)
		for _, action := range event.RecommendedActions {
			fmt.Printf("      → %s\n", action)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	return nil
}

func (t *TerminalNotifier) SendAlert(alert *models.Alert) error {
	fmt.Printf("\n🚨 %s\n   %s\n", alert.Title, alert.Message)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func main() {
	fmt.Println("🗞  Newsroom Desk - Digest Preview")
	fmt.Println("=================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var source sources.Source = sources.NewFixtureSource(cfg.FixturesPath)
	dataset, err := sources.Load(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	board := newsroom.NewBoard(dataset.Events)
	service := digest.NewService(cfg, board, &FileStorage{}, &TerminalNotifier{}, dataset.Presets)

	if err := service.RunDigest(ctx); err != nil {
		log.Fatalf("Digest run failed: %v", err)
	}

	fmt.Println("\n🔍 Running urgent check...")
	if err := service.RunUrgentCheck(ctx); err != nil {
		log.Fatalf("Urgent check failed: %v", err)
	}

	stats, err := json.MarshalIndent(json.RawMessage(service.GetMetrics()), "", "  ")
	if err == nil {
		fmt.Printf("\n📊 Stats:\n%s\n", stats)
	}

	fmt.Printf("\n✅ Preview written to %s/\n", outputDir)
}
