package scheduler

import (
	"context"
	"testing"

	"github.com/azure/newsroom-desk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) RunDigest(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRunner) RunUrgentCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestStart_RegistersJobs(t *testing.T) {
	cfg := &config.Config{DigestSchedule: "0 30 7 * * *", UrgentSchedule: "0 */15 * * * *"}
	service := NewService(cfg, &MockRunner{})

	require.NoError(t, service.Start())
	defer service.Stop()

	assert.Equal(t, 2, service.Entries())
}

func TestStart_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"Invalid digest schedule", &config.Config{DigestSchedule: "daily", UrgentSchedule: "0 */15 * * * *"}},
		{"Invalid urgent schedule", &config.Config{DigestSchedule: "0 30 7 * * *", UrgentSchedule: "hourly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(tt.cfg, &MockRunner{})
			assert.Error(t, service.Start())
		})
	}
}

func TestJobs_RunWithDeadline(t *testing.T) {
	runner := &MockRunner{}
	runner.On("RunDigest", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(nil)
	runner.On("RunUrgentCheck", mock.Anything).Return(nil)

	cfg := &config.Config{DigestSchedule: "0 30 7 * * *", UrgentSchedule: "0 */15 * * * *"}
	service := NewService(cfg, runner)
	require.NoError(t, service.Start())
	defer service.Stop()

	for _, entry := range service.cron.Entries() {
		entry.Job.Run()
	}

	runner.AssertNumberOfCalls(t, "RunDigest", 1)
	runner.AssertNumberOfCalls(t, "RunUrgentCheck", 1)
}
