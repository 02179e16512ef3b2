package newsroom

import (
	"time"

	"github.com/azure/newsroom-desk/internal/models"
)

// Recorder receives desk activity for metrics
type Recorder interface {
	RecordFilter(visible int, duration time.Duration)
	RecordFactCheckTriggered()
	RecordFactCheckCompleted(verdict models.Verdict)
	RecordFactCheckDismissed()
}

type nopRecorder struct{}

func (nopRecorder) RecordFilter(int, time.Duration)         {}
func (nopRecorder) RecordFactCheckTriggered()               {}
func (nopRecorder) RecordFactCheckCompleted(models.Verdict) {}
func (nopRecorder) RecordFactCheckDismissed()               {}
