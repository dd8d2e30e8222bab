package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"user-lifecycle-service/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type statusUseCaseMock struct {
	mock.Mock
}

func (m *statusUseCaseMock) ActivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *statusUseCaseMock) DeactivateUserImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *statusUseCaseMock) ScheduleUserDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string) (*domain.ScheduledAction, error) {
	args := m.Called(ctx, userID, scheduledFor, performedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledAction), args.Error(1)
}

func (m *statusUseCaseMock) CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *statusUseCaseMock) ReactivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *statusUseCaseMock) ExecuteScheduledAction(ctx context.Context, actionID int64) error {
	args := m.Called(ctx, actionID)
	return args.Error(0)
}

func (m *statusUseCaseMock) GetUserStatusInfo(ctx context.Context, userID int64) (*domain.UserStatusInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatusInfo), args.Error(1)
}

func (m *statusUseCaseMock) GetUserActivityHistory(ctx context.Context, userID int64, limit int) ([]*domain.ActivityHistoryEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityHistoryEntry), args.Error(1)
}

func (m *statusUseCaseMock) GetUserScheduledActions(ctx context.Context, userID int64) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

func (m *statusUseCaseMock) GetPendingDeactivations(ctx context.Context) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

func (m *statusUseCaseMock) GetOverdueActions(ctx context.Context) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

func (m *statusUseCaseMock) GetSystemActivityStats(ctx context.Context) (*domain.SystemActivityStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemActivityStats), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSweeper_Sweep_ExecutesOverdueActions(t *testing.T) {
	uc := &statusUseCaseMock{}
	s := NewSweeper(uc, time.Minute, quietLogger())

	overdue := []*domain.ScheduledAction{
		{ID: 1, UserID: 10, Status: domain.ScheduledActionPending},
		{ID: 2, UserID: 11, Status: domain.ScheduledActionPending},
	}
	uc.On("GetOverdueActions", mock.Anything).Return(overdue, nil)
	uc.On("ExecuteScheduledAction", mock.Anything, int64(1)).Return(nil)
	uc.On("ExecuteScheduledAction", mock.Anything, int64(2)).Return(nil)

	s.sweep()

	uc.AssertExpectations(t)
}

func TestSweeper_Sweep_ErrorDoesNotStopPass(t *testing.T) {
	uc := &statusUseCaseMock{}
	s := NewSweeper(uc, time.Minute, quietLogger())

	overdue := []*domain.ScheduledAction{
		{ID: 1, UserID: 10, Status: domain.ScheduledActionPending},
		{ID: 2, UserID: 11, Status: domain.ScheduledActionPending},
		{ID: 3, UserID: 12, Status: domain.ScheduledActionPending},
	}
	uc.On("GetOverdueActions", mock.Anything).Return(overdue, nil)
	uc.On("ExecuteScheduledAction", mock.Anything, int64(1)).Return(assert.AnError)
	uc.On("ExecuteScheduledAction", mock.Anything, int64(2)).Return(domain.ErrActionNotPending)
	uc.On("ExecuteScheduledAction", mock.Anything, int64(3)).Return(nil)

	s.sweep()

	// Все три действия получили попытку исполнения
	uc.AssertNumberOfCalls(t, "ExecuteScheduledAction", 3)
}

func TestSweeper_Sweep_NoOverdueActions(t *testing.T) {
	uc := &statusUseCaseMock{}
	s := NewSweeper(uc, time.Minute, quietLogger())

	uc.On("GetOverdueActions", mock.Anything).Return([]*domain.ScheduledAction{}, nil)

	s.sweep()

	uc.AssertNotCalled(t, "ExecuteScheduledAction")
}

func TestSweeper_Sweep_ListFailure(t *testing.T) {
	uc := &statusUseCaseMock{}
	s := NewSweeper(uc, time.Minute, quietLogger())

	uc.On("GetOverdueActions", mock.Anything).Return(nil, assert.AnError)

	s.sweep()

	uc.AssertNotCalled(t, "ExecuteScheduledAction")
}

func TestSweeper_StartStopInfo(t *testing.T) {
	uc := &statusUseCaseMock{}
	uc.On("GetOverdueActions", mock.Anything).Return([]*domain.ScheduledAction{}, nil)
	s := NewSweeper(uc, time.Hour, quietLogger())

	assert.False(t, s.Info().Running)
	assert.Nil(t, s.Info().NextTick)

	s.Start()
	info := s.Info()
	assert.True(t, info.Running)
	assert.NotNil(t, info.NextTick)
	assert.True(t, info.NextTick.After(time.Now()))

	// Повторный запуск не создает второго расписания
	s.Start()
	assert.True(t, s.Info().Running)

	s.Stop()
	assert.False(t, s.Info().Running)
	assert.Nil(t, s.Info().NextTick)

	// Повторная остановка безопасна
	s.Stop()
}
