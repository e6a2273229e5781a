package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"warehouse/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverReconciler struct {
	mock.Mock
}

func (m *MockDriverReconciler) Handle(ctx context.Context, cmd commands.ReconcileDriversCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, nil)), buf
}

func TestDriverReconciliationJob_RunOnce(t *testing.T) {
	t.Run("logs repaired drivers", func(t *testing.T) {
		handler := new(MockDriverReconciler)
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReconcileDriversCommand) bool {
			return cmd.Validate() == nil
		})).Return(2, nil).Once()
		logger, buf := newTestLogger()

		NewDriverReconciliationJob(handler, "", logger).RunOnce(t.Context())

		handler.AssertExpectations(t)
		assert.Contains(t, buf.String(), "Drivers reconciled")
		assert.Contains(t, buf.String(), "repaired=2")
	})

	t.Run("stays quiet when nothing changed", func(t *testing.T) {
		handler := new(MockDriverReconciler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, nil).Once()
		logger, buf := newTestLogger()

		NewDriverReconciliationJob(handler, "", logger).RunOnce(t.Context())

		assert.Empty(t, buf.String())
	})

	t.Run("logs failures", func(t *testing.T) {
		handler := new(MockDriverReconciler)
		handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("database down")).Once()
		logger, buf := newTestLogger()

		NewDriverReconciliationJob(handler, "", logger).RunOnce(t.Context())

		assert.Contains(t, buf.String(), "Driver reconciliation failed")
		assert.Contains(t, buf.String(), "database down")
	})
}

func TestDriverReconciliationJob_Schedule(t *testing.T) {
	logger, _ := newTestLogger()

	job := NewDriverReconciliationJob(new(MockDriverReconciler), "", logger)
	assert.Equal(t, DefaultReconcileSchedule, job.schedule)

	bad := NewDriverReconciliationJob(new(MockDriverReconciler), "every minute", logger)
	require.Error(t, bad.Start())
}

func TestJobManager_StartStop(t *testing.T) {
	logger, buf := newTestLogger()
	manager := NewJobManager(new(MockDriverReconciler), "0 0 0 1 1 *", logger)

	require.NoError(t, manager.StartAll())
	manager.StopAll()

	assert.Contains(t, buf.String(), "Driver reconciliation job started")
	assert.Contains(t, buf.String(), "Driver reconciliation job stopped")
}

func TestJobManager_StartFailure(t *testing.T) {
	logger, _ := newTestLogger()
	manager := NewJobManager(new(MockDriverReconciler), "not a schedule", logger)

	err := manager.StartAll()

	require.ErrorContains(t, err, "driver reconciliation job")
}
