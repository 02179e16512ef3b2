package models

import "time"

// Verdict is the outcome of a fact check
type Verdict string

const (
	VerdictVerified    Verdict = "verified"
	VerdictNeedsReview Verdict = "needs_review"
	VerdictDebunked    Verdict = "debunked"
)

// Stance is how a reference relates to the checked claim
type Stance string

const (
	StanceSupporting Stance = "supporting"
	StanceDisputing  Stance = "disputing"
	StanceNeutral    Stance = "neutral"
)

// FactCheckReference points at an article consulted during a fact check
type FactCheckReference struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Stance Stance `json:"stance"`
}

// FactCheckResult is the computed outcome shown in the fact-check modal
type FactCheckResult struct {
	Verdict      Verdict              `json:"verdict"`
	Summary      string               `json:"summary"`
	References   []FactCheckReference `json:"references"`
	RiskNotes    []string             `json:"riskNotes"`
	AIConfidence int                  `json:"aiConfidence"`
	LatencyMs    int                  `json:"latencyMs"`
}

// Phase is the lifecycle position of a fact-check session
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// FactCheckSession is the single transient fact-check workflow of a desk
type FactCheckSession struct {
	ID          string           `json:"id,omitempty"`
	Phase       Phase            `json:"phase"`
	Visible     bool             `json:"visible"`
	Loading     bool             `json:"loading"`
	Event       *Event           `json:"event,omitempty"`
	Result      *FactCheckResult `json:"result,omitempty"`
	TriggeredAt time.Time        `json:"triggeredAt,omitempty"`
}

// IdleSession is the session of a desk with no fact check open
func IdleSession() FactCheckSession {
	return FactCheckSession{Phase: PhaseIdle}
}
