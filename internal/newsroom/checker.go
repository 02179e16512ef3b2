package newsroom

import (
	"sync"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultFactCheckDelay is the simulated latency of a fact-check call
const DefaultFactCheckDelay = 1200 * time.Millisecond

// Timer is a pending one-shot callback
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn to run once after d. fn must not run before
// AfterFunc returns.
type AfterFunc func(d time.Duration, fn func()) Timer

func realAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// FactChecker runs the simulated fact-check workflow. At most one session is
// active; every trigger or dismissal bumps the generation so that a timer
// belonging to an older session can never publish its result.
type FactChecker struct {
	mu         sync.Mutex
	delay      time.Duration
	afterFunc  AfterFunc
	recorder   Recorder
	now        func() time.Time
	session    models.FactCheckSession
	generation uint64
	timer      Timer
}

// NewFactChecker creates an idle fact checker
func NewFactChecker(delay time.Duration, afterFunc AfterFunc, recorder Recorder) *FactChecker {
	if afterFunc == nil {
		afterFunc = realAfterFunc
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &FactChecker{
		delay:     delay,
		afterFunc: afterFunc,
		recorder:  recorder,
		now:       time.Now,
		session:   models.IdleSession(),
	}
}

// Trigger opens a loading session for the event, replacing any active one
func (c *FactChecker) Trigger(event models.Event) models.FactCheckSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.generation++
	generation := c.generation

	bound := event
	c.session = models.FactCheckSession{
		ID:          uuid.NewString(),
		Phase:       models.PhaseLoading,
		Visible:     true,
		Loading:     true,
		Event:       &bound,
		TriggeredAt: c.now(),
	}
	c.timer = c.afterFunc(c.delay, func() {
		c.complete(generation, bound)
	})

	logrus.WithFields(logrus.Fields{
		"session": c.session.ID,
		"event":   event.ID,
	}).Debug("Fact check triggered")
	c.recorder.RecordFactCheckTriggered()

	return c.session
}

// Dismiss closes the session; a pending timer will have no visible effect
func (c *FactChecker) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasActive := c.session.Phase != models.PhaseIdle
	c.stopTimerLocked()
	c.generation++
	c.session = models.IdleSession()

	if wasActive {
		c.recorder.RecordFactCheckDismissed()
	}
}

// Session returns a copy of the current session
func (c *FactChecker) Session() models.FactCheckSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *FactChecker) complete(generation uint64, event models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation || c.session.Phase != models.PhaseLoading {
		logrus.Debugf("Ignoring stale fact check completion for event %s", event.ID)
		return
	}

	result := GenerateFactCheck(event)
	c.session.Phase = models.PhaseReady
	c.session.Loading = false
	c.session.Result = &result
	c.timer = nil

	logrus.WithFields(logrus.Fields{
		"session": c.session.ID,
		"event":   event.ID,
		"verdict": result.Verdict,
	}).Info("Fact check completed")
	c.recorder.RecordFactCheckCompleted(result.Verdict)
}

func (c *FactChecker) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
