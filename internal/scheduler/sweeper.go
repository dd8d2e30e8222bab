package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"user-lifecycle-service/internal/domain"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper периодически исполняет просроченные отложенные действия.
// Тики не накладываются: если предыдущий проход еще идет, очередной
// пропускается. Ошибка одного действия не прерывает проход.
type Sweeper struct {
	statusUC domain.StatusUseCase
	interval time.Duration
	logger   *logrus.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewSweeper создает новый экземпляр Sweeper.
func NewSweeper(statusUC domain.StatusUseCase, interval time.Duration, logger *logrus.Logger) *Sweeper {
	return &Sweeper{
		statusUC: statusUC,
		interval: interval,
		logger:   logger,
	}
}

// Start запускает периодические проходы. Повторный вызов игнорируется.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(s.logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(s.logger)),
	))

	// Интервал валидируется в конфиге, поэтому AddFunc не может отказать
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.sweep); err != nil {
		s.logger.Errorf("Sweeper schedule rejected: %v", err)
		return
	}

	c.Start()
	s.cron = c
	s.logger.Infof("Sweeper started, interval %s", s.interval)
}

// Stop останавливает проходы и дожидается завершения текущего. Повторный
// вызов игнорируется.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}

	<-c.Stop().Done()
	s.logger.Info("Sweeper stopped")
}

// Info возвращает текущее состояние обработчика.
func (s *Sweeper) Info() domain.SweeperInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := domain.SweeperInfo{}
	if s.cron == nil {
		return info
	}

	info.Running = true
	if entries := s.cron.Entries(); len(entries) > 0 {
		next := entries[0].Next
		info.NextTick = &next
	}
	return info
}

// sweep выполняет один проход по просроченным действиям.
func (s *Sweeper) sweep() {
	ctx := context.Background()

	actions, err := s.statusUC.GetOverdueActions(ctx)
	if err != nil {
		s.logger.Errorf("Sweep failed to list overdue actions: %v", err)
		return
	}
	if len(actions) == 0 {
		return
	}

	s.logger.Infof("Sweep found %d overdue actions", len(actions))

	executed := 0
	for _, action := range actions {
		err := s.statusUC.ExecuteScheduledAction(ctx, action.ID)
		switch {
		case err == nil:
			executed++
		case errors.Is(err, domain.ErrActionNotPending):
			// Действие перехвачено другим исполнителем или отменено
			s.logger.Infof("Action %d no longer pending, skipped", action.ID)
		case errors.Is(err, domain.ErrUserNotFound):
			s.logger.Warnf("Action %d failed: user %d not found", action.ID, action.UserID)
		default:
			// Временная ошибка: действие остается pending до следующего прохода
			s.logger.Errorf("Action %d execution failed: %v", action.ID, err)
		}
	}

	s.logger.Infof("Sweep finished, %d of %d actions executed", executed, len(actions))
}
