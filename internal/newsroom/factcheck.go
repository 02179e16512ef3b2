package newsroom

import (
	"fmt"

	"github.com/azure/newsroom-desk/internal/models"
)

const (
	verifiedReliability    = 90
	needsReviewReliability = 75
	maxConfidence          = 99
	maxReferences          = 3
)

// referenceStances is applied by article position, not content
var referenceStances = []models.Stance{
	models.StanceSupporting,
	models.StanceNeutral,
	models.StanceSupporting,
}

// GenerateFactCheck derives the mock fact-check result for an event.
// The result depends only on the event's fields.
func GenerateFactCheck(event models.Event) models.FactCheckResult {
	verdict := verdictFor(event.Reliability)

	limit := len(event.Articles)
	if limit > maxReferences {
		limit = maxReferences
	}

	references := make([]models.FactCheckReference, 0, limit)
	for i, article := range event.Articles[:limit] {
		references = append(references, models.FactCheckReference{
			Title:  article.Headline,
			URL:    article.URL,
			Stance: referenceStances[i],
		})
	}

	firstNote := "No direct contradictions detected across structured feeds and plugin archives."
	if verdict == models.VerdictDebunked {
		firstNote = "Confidence flagged due to conflicting eyewitness accounts."
	}

	confidence := event.Reliability + 6
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	return models.FactCheckResult{
		Verdict: verdict,
		Summary: fmt.Sprintf("Cross-referenced %d independent sources and fact-check plugins to validate the latest signals for %q.",
			len(event.Articles), event.Title),
		References: references,
		RiskNotes: []string{
			firstNote,
			"Recommend rerunning verification when new primary sources arrive.",
		},
		AIConfidence: confidence,
		LatencyMs:    2300 + 180*len(event.Articles),
	}
}

func verdictFor(reliability int) models.Verdict {
	switch {
	case reliability >= verifiedReliability:
		return models.VerdictVerified
	case reliability >= needsReviewReliability:
		return models.VerdictNeedsReview
	default:
		return models.VerdictDebunked
	}
}
