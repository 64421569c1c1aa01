package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtService/internal/domain"
)

// BookingCompleter интерфейс фонового завершения бронирований
type BookingCompleter interface {
	CompleteElapsed(ctx context.Context) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler периодически завершает подтверждённые бронирования,
// у которых прошло время окончания. Завершение best-effort: если сервис
// не работал, бронирования будут завершены на следующем тике.
type Scheduler struct {
	completer BookingCompleter
	interval  time.Duration
	logger    Logger
}

// New создает новый планировщик фонового завершения
func New(completer BookingCompleter, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		completer: completer,
		interval:  interval,
		logger:    logger,
	}
}

// Run запускает цикл планировщика. Блокирует до отмены контекста.
// Первый проход выполняется сразу, чтобы подобрать бронирования,
// истёкшие за время простоя сервиса.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler: started, interval=%s", s.interval)

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	completed, err := s.completer.CompleteElapsed(ctx)
	if err != nil {
		s.logger.Error("Scheduler: sweep failed: %v", err)
		return
	}
	if len(completed) > 0 {
		s.logger.Info("Scheduler: completed %d elapsed bookings", len(completed))
	}
}
