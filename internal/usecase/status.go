package usecase

import (
	"context"
	"time"

	"user-lifecycle-service/internal/domain"
)

// StatusUseCase реализует бизнес-логику жизненного цикла пользователя.
// Момент времени фиксируется один раз в начале операции (UTC) и передается
// вниз в репозитории и в вычисляемые поля.
type StatusUseCase struct {
	statusRepo   domain.StatusRepository
	userRepo     domain.UserRepository
	activityRepo domain.ActivityRepository
	actionRepo   domain.ScheduledActionRepository
	statsRepo    domain.StatsRepository
	now          func() time.Time
}

// NewStatusUseCase создает новый экземпляр StatusUseCase.
// nowFn позволяет подменять часы в тестах; nil означает time.Now.
func NewStatusUseCase(
	statusRepo domain.StatusRepository,
	userRepo domain.UserRepository,
	activityRepo domain.ActivityRepository,
	actionRepo domain.ScheduledActionRepository,
	statsRepo domain.StatsRepository,
	nowFn func() time.Time,
) domain.StatusUseCase {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &StatusUseCase{
		statusRepo:   statusRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		actionRepo:   actionRepo,
		statsRepo:    statsRepo,
		now:          nowFn,
	}
}

// ActivateUser открывает первый период активности пользователя.
func (uc *StatusUseCase) ActivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.statusRepo.Activate(ctx, userID, performedBy, reason, uc.now().UTC())
}

// DeactivateUserImmediately немедленно деактивирует пользователя.
func (uc *StatusUseCase) DeactivateUserImmediately(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.statusRepo.DeactivateImmediately(ctx, userID, performedBy, reason, uc.now().UTC())
}

// ScheduleUserDeactivation планирует деактивацию на будущий момент.
func (uc *StatusUseCase) ScheduleUserDeactivation(ctx context.Context, userID int64, scheduledFor time.Time, performedBy *int64, reason *string) (*domain.ScheduledAction, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.statusRepo.ScheduleDeactivation(ctx, userID, scheduledFor.UTC(), performedBy, reason, uc.now().UTC())
}

// CancelScheduledDeactivation отменяет запланированную деактивацию.
func (uc *StatusUseCase) CancelScheduledDeactivation(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.statusRepo.CancelScheduledDeactivation(ctx, userID, performedBy, reason, uc.now().UTC())
}

// ReactivateUser открывает новый период активности для неактивного пользователя.
func (uc *StatusUseCase) ReactivateUser(ctx context.Context, userID int64, performedBy *int64, reason *string) (*domain.ActivityRecord, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return uc.statusRepo.Reactivate(ctx, userID, performedBy, reason, uc.now().UTC())
}

// ExecuteScheduledAction исполняет ожидающее отложенное действие.
func (uc *StatusUseCase) ExecuteScheduledAction(ctx context.Context, actionID int64) error {
	return uc.statusRepo.ExecuteScheduledAction(ctx, actionID, uc.now().UTC())
}

// GetUserStatusInfo возвращает сводную информацию о статусе пользователя
// с вычисляемыми полями относительно текущего момента.
func (uc *StatusUseCase) GetUserStatusInfo(ctx context.Context, userID int64) (*domain.UserStatusInfo, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	return &domain.UserStatusInfo{
		UserID:                      user.ID,
		Username:                    user.Username,
		Status:                      user.Status,
		IsActive:                    user.Status.IsActive(),
		CurrentJoinedAt:             user.CurrentJoinedAt,
		CurrentLeftAt:               user.CurrentLeftAt,
		ScheduledDeactivationAt:     user.ScheduledDeactivationAt,
		ScheduledDeactivationReason: user.ScheduledDeactivationReason,
		DaysUntilDeactivation:       user.DaysUntilDeactivation(now),
		HoursUntilDeactivation:      user.HoursUntilDeactivation(now),
	}, nil
}

// GetUserActivityHistory возвращает журнал активности пользователя
// с именами исполнителей; limit <= 0 означает без ограничения.
func (uc *StatusUseCase) GetUserActivityHistory(ctx context.Context, userID int64, limit int) ([]*domain.ActivityHistoryEntry, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	// Проверяем, что пользователь существует
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	records, err := uc.activityRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	var performerIDs []int64
	seen := make(map[int64]bool)
	for _, r := range records {
		if r.PerformedByID != nil && !seen[*r.PerformedByID] {
			seen[*r.PerformedByID] = true
			performerIDs = append(performerIDs, *r.PerformedByID)
		}
	}

	usernames := map[int64]string{}
	if len(performerIDs) > 0 {
		usernames, err = uc.userRepo.GetUsernames(ctx, performerIDs)
		if err != nil {
			return nil, err
		}
	}

	entries := make([]*domain.ActivityHistoryEntry, 0, len(records))
	for _, r := range records {
		entry := &domain.ActivityHistoryEntry{ActivityRecord: *r}
		if r.PerformedByID != nil {
			if name, ok := usernames[*r.PerformedByID]; ok {
				entry.PerformedByUsername = &name
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// GetUserScheduledActions возвращает все отложенные действия пользователя.
func (uc *StatusUseCase) GetUserScheduledActions(ctx context.Context, userID int64) ([]*domain.ScheduledAction, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	// Проверяем, что пользователь существует
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	return uc.actionRepo.ListByUser(ctx, userID)
}

// GetPendingDeactivations возвращает все ожидающие деактивации.
func (uc *StatusUseCase) GetPendingDeactivations(ctx context.Context) ([]*domain.ScheduledAction, error) {
	return uc.actionRepo.ListPendingDeactivations(ctx)
}

// GetOverdueActions возвращает ожидающие действия, срок которых наступил.
func (uc *StatusUseCase) GetOverdueActions(ctx context.Context) ([]*domain.ScheduledAction, error) {
	return uc.actionRepo.ListOverdue(ctx, uc.now().UTC())
}

// GetSystemActivityStats возвращает сводную статистику по системе.
func (uc *StatusUseCase) GetSystemActivityStats(ctx context.Context) (*domain.SystemActivityStats, error) {
	return uc.statsRepo.GetSystemActivityStats(ctx, uc.now().UTC())
}
