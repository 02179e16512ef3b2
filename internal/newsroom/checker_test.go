package newsroom

import (
	"testing"
	"time"

	"github.com/azure/newsroom-desk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactChecker_TriggerThenReady(t *testing.T) {
	timers := &manualTimers{}
	recorder := &recordingRecorder{}
	checker := NewFactChecker(DefaultFactCheckDelay, timers.AfterFunc, recorder)

	assert.Equal(t, models.PhaseIdle, checker.Session().Phase)

	event := sampleEvents()[0]
	session := checker.Trigger(event)

	assert.Equal(t, models.PhaseLoading, session.Phase)
	assert.True(t, session.Visible)
	assert.True(t, session.Loading)
	assert.NotEmpty(t, session.ID)
	require.NotNil(t, session.Event)
	assert.Equal(t, event.ID, session.Event.ID)
	assert.Nil(t, session.Result)

	require.Equal(t, 1, timers.count())
	assert.Equal(t, 1200*time.Millisecond, timers.pending[0].delay)

	timers.fire(0)

	ready := checker.Session()
	assert.Equal(t, models.PhaseReady, ready.Phase)
	assert.True(t, ready.Visible)
	assert.False(t, ready.Loading)
	assert.Equal(t, session.ID, ready.ID)
	require.NotNil(t, ready.Result)
	assert.Equal(t, GenerateFactCheck(event), *ready.Result)

	assert.Equal(t, 1, recorder.triggered)
	assert.Equal(t, []models.Verdict{models.VerdictNeedsReview}, recorder.completed)
}

func TestFactChecker_DismissBeforeTimerFires(t *testing.T) {
	timers := &manualTimers{}
	recorder := &recordingRecorder{}
	checker := NewFactChecker(DefaultFactCheckDelay, timers.AfterFunc, recorder)

	checker.Trigger(sampleEvents()[0])
	checker.Dismiss()

	assert.True(t, timers.pending[0].stopped, "pending timer is cancelled")

	// a late fire must not resurrect the session
	timers.fire(0)

	session := checker.Session()
	assert.Equal(t, models.PhaseIdle, session.Phase)
	assert.False(t, session.Visible)
	assert.False(t, session.Loading)
	assert.Nil(t, session.Result)
	assert.Nil(t, session.Event)
	assert.Empty(t, recorder.completed)
	assert.Equal(t, 1, recorder.dismissed)
}

func TestFactChecker_RetriggerReplacesSession(t *testing.T) {
	timers := &manualTimers{}
	checker := NewFactChecker(DefaultFactCheckDelay, timers.AfterFunc, nil)
	events := sampleEvents()

	first := checker.Trigger(events[0])
	second := checker.Trigger(events[1])
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, timers.pending[0].stopped)

	// the first timer firing late is ignored
	timers.fire(0)
	assert.Equal(t, models.PhaseLoading, checker.Session().Phase)
	assert.Equal(t, "event-2", checker.Session().Event.ID)

	timers.fire(1)
	session := checker.Session()
	assert.Equal(t, models.PhaseReady, session.Phase)
	assert.Equal(t, models.VerdictVerified, session.Result.Verdict)
}

func TestFactChecker_UsesEventBoundAtTrigger(t *testing.T) {
	timers := &manualTimers{}
	checker := NewFactChecker(DefaultFactCheckDelay, timers.AfterFunc, nil)

	event := sampleEvents()[0]
	checker.Trigger(event)

	event.Reliability = 10
	event.Title = "changed"

	timers.fire(0)
	session := checker.Session()
	assert.Equal(t, models.VerdictNeedsReview, session.Result.Verdict)
	assert.Equal(t, "Global Semiconductor Supply Chain Reconfiguration", session.Event.Title)
}

func TestFactChecker_CompletionFiresOnce(t *testing.T) {
	timers := &manualTimers{}
	recorder := &recordingRecorder{}
	checker := NewFactChecker(DefaultFactCheckDelay, timers.AfterFunc, recorder)

	checker.Trigger(sampleEvents()[0])
	timers.fire(0)
	timers.fire(0)

	assert.Len(t, recorder.completed, 1)
}

func TestFactChecker_DismissWhenIdle(t *testing.T) {
	recorder := &recordingRecorder{}
	checker := NewFactChecker(DefaultFactCheckDelay, (&manualTimers{}).AfterFunc, recorder)

	checker.Dismiss()
	assert.Equal(t, models.PhaseIdle, checker.Session().Phase)
	assert.Zero(t, recorder.dismissed)
}

func TestFactChecker_RealTimer(t *testing.T) {
	checker := NewFactChecker(10*time.Millisecond, nil, nil)
	checker.Trigger(sampleEvents()[1])

	assert.Eventually(t, func() bool {
		return checker.Session().Phase == models.PhaseReady
	}, time.Second, 5*time.Millisecond)
}
