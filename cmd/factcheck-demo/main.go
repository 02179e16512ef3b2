package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/azure/newsroom-desk/internal/models"
	"github.com/azure/newsroom-desk/internal/newsroom"
	"github.com/azure/newsroom-desk/internal/sources"
	"github.com/joho/godotenv"
)

const pollInterval = 100 * time.Millisecond

func main() {
	fmt.Println("🧪 Newsroom Desk - Fact Check Demo")
	fmt.Println("==================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var source sources.Source = sources.NewFixtureSource(cfg.FixturesPath)
	dataset, err := sources.Load(ctx, source)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	board := newsroom.NewBoard(dataset.Events,
		newsroom.WithFactChecker(newsroom.NewFactChecker(cfg.FactCheckDelay, nil, nil)),
	)

	fmt.Printf("📚 %d events loaded, %d visible in the default %s window\n",
		len(board.Events()), len(board.FilteredEvents()), board.Filters().Timeframe)

	for _, event := range board.Events() {
		start := time.Now()
		session, err := board.OnFactCheck(event.ID)
		if err != nil {
			log.Fatalf("Fact check for %s failed: %v", event.ID, err)
		}
		fmt.Printf("\n🔍 %s (%s) session %s\n", event.Title, event.ID, session.ID)

		result, err := waitForResult(ctx, board)
		if err != nil {
			log.Fatalf("Fact check for %s did not complete: %v", event.ID, err)
		}

		fmt.Printf("   Verdict: %s | confidence %d%% | simulated latency %dms | waited %v\n",
			result.Verdict, result.AIConfidence, result.LatencyMs, time.Since(start).Round(time.Millisecond))
		for _, ref := range result.References {
			fmt.Printf("   • [%s] %s\n", ref.Stance, ref.Title)
		}
		fmt.Printf("   %s\n", strings.Join(result.RiskNotes, " "))

		board.OnDismiss()
	}

	fmt.Println("\n✅ Fact check demo completed")
}

func waitForResult(ctx context.Context, board *newsroom.Board) (*models.FactCheckResult, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if session := board.FactCheck(); session.Phase == models.PhaseReady {
				return session.Result, nil
			}
		}
	}
}
