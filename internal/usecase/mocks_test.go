package usecase_test

import (
	"context"
	"time"

	"user-lifecycle-service/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Ручные моки репозиториев в стиле testify/mock.

type StatusRepositoryMock struct {
	mock.Mock
}

func (m *StatusRepositoryMock) Activate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *StatusRepositoryMock) DeactivateImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *StatusRepositoryMock) ScheduleDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string, now time.Time) (*domain.ScheduledAction, error) {
	args := m.Called(ctx, userID, scheduledFor, performedBy, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledAction), args.Error(1)
}

func (m *StatusRepositoryMock) CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *StatusRepositoryMock) Reactivate(ctx context.Context, userID int64, performedBy *int64, reason *string, now time.Time) (*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, performedBy, reason, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityRecord), args.Error(1)
}

func (m *StatusRepositoryMock) ExecuteScheduledAction(ctx context.Context, actionID int64, now time.Time) error {
	args := m.Called(ctx, actionID, now)
	return args.Error(0)
}

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUsernames(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

type ActivityRepositoryMock struct {
	mock.Mock
}

func (m *ActivityRepositoryMock) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.ActivityRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ActivityRecord), args.Error(1)
}

type ScheduledActionRepositoryMock struct {
	mock.Mock
}

func (m *ScheduledActionRepositoryMock) ListByUser(ctx context.Context, userID int64) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

func (m *ScheduledActionRepositoryMock) ListPendingDeactivations(ctx context.Context) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

func (m *ScheduledActionRepositoryMock) ListOverdue(ctx context.Context, now time.Time) ([]*domain.ScheduledAction, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScheduledAction), args.Error(1)
}

type StatsRepositoryMock struct {
	mock.Mock
}

func (m *StatsRepositoryMock) GetSystemActivityStats(ctx context.Context, now time.Time) (*domain.SystemActivityStats, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SystemActivityStats), args.Error(1)
}
