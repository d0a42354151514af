package reminders

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/infra/queue"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// ListDueForReminder выбирает запланированные визиты в окне (now, now+lookaheadHours],
	// по которым напоминание еще не отправлялось
	ListDueForReminder(ctx context.Context, now time.Time, lookaheadHours int) ([]*domain.Reservation, error)
	MarkReminderSent(ctx context.Context, id int64) error
}

// EventPublisher интерфейс публикации событий напоминаний
type EventPublisher interface {
	PublishReminderDue(ctx context.Context, event queue.ReminderDueEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
