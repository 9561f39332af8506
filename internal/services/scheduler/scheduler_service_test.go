package scheduler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syntoo/nepsebot/internal/common"
)

func TestRegisterJob_RejectsDuplicateName(t *testing.T) {
	svc := NewService(common.GetLogger()).(*Service)

	require.NoError(t, svc.RegisterJob("summary", "0 0 15 * * *", func() error { return nil }))
	err := svc.RegisterJob("summary", "0 0 16 * * *", func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegisterJob_RejectsBadSchedule(t *testing.T) {
	svc := NewService(common.GetLogger()).(*Service)

	err := svc.RegisterJob("summary", "not a schedule", func() error { return nil })
	require.Error(t, err)

	_, err = svc.GetJobStatus("summary")
	require.Error(t, err)
}

func TestExecuteJob_RecordsOutcome(t *testing.T) {
	svc := NewService(common.GetLogger()).(*Service)

	calls := 0
	require.NoError(t, svc.RegisterJob("summary", "0 0 15 * * *", func() error {
		calls++
		if calls == 1 {
			return errors.New("source unavailable")
		}
		return nil
	}))

	svc.executeJob("summary")
	status, err := svc.GetJobStatus("summary")
	require.NoError(t, err)
	assert.Equal(t, "source unavailable", status.LastError)
	require.NotNil(t, status.LastRun)

	svc.executeJob("summary")
	status, err = svc.GetJobStatus("summary")
	require.NoError(t, err)
	assert.Empty(t, status.LastError)
}

func TestExecuteJob_RecoversFromPanic(t *testing.T) {
	svc := NewService(common.GetLogger()).(*Service)

	require.NoError(t, svc.RegisterJob("summary", "0 0 15 * * *", func() error {
		panic("boom")
	}))

	assert.NotPanics(t, func() { svc.executeJob("summary") })

	status, err := svc.GetJobStatus("summary")
	require.NoError(t, err)
	assert.Contains(t, status.LastError, "boom")
	assert.False(t, status.IsRunning)
}

func TestStartStopLifecycle(t *testing.T) {
	svc := NewService(common.GetLogger())

	assert.False(t, svc.IsRunning())
	require.NoError(t, svc.Start())
	assert.True(t, svc.IsRunning())
	require.Error(t, svc.Start())
	require.NoError(t, svc.Stop())
	assert.False(t, svc.IsRunning())
	require.NoError(t, svc.Stop())
}
