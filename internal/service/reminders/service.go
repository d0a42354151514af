package reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/infra/queue"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис напоминаний о предстоящих визитах
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher // nil, если рассылка выключена
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса напоминаний
func NewService(reservationRepo ReservationRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// DueForReminder выбирает визиты, по которым пора отправить напоминание
// Выборка идемпотентна: пока reminder_sent не выставлен, повторные вызовы
// возвращают те же записи; сама выборка ничего не помечает
func (s *Service) DueForReminder(ctx context.Context, lookaheadHours int) (*models.ReservationListResponse, error) {
	if lookaheadHours <= 0 {
		return nil, fmt.Errorf("%w: lookaheadHours must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	reservations, err := s.reservationRepo.ListDueForReminder(ctx, now, lookaheadHours)
	if err != nil {
		s.logger.Error("DueForReminder: repository error: %v", err)
		return nil, fmt.Errorf("%w: DueForReminder - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DueForReminder: %d reservations due within %d hours", len(reservations), lookaheadHours)
	return models.FromDomainReservationList(reservations), nil
}

// Dispatch публикует напоминания по всем визитам в окне и помечает их
// отправленными. Запись помечается только после успешной публикации,
// при сбое она попадет в следующий проход
func (s *Service) Dispatch(ctx context.Context, lookaheadHours int) (int, error) {
	if s.publisher == nil {
		return 0, nil
	}

	if lookaheadHours <= 0 {
		return 0, fmt.Errorf("%w: lookaheadHours must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()

	reservations, err := s.reservationRepo.ListDueForReminder(ctx, now, lookaheadHours)
	if err != nil {
		s.logger.Error("Dispatch: repository error: %v", err)
		return 0, fmt.Errorf("%w: Dispatch - repository error: %v", ErrInternal, err)
	}

	sent := 0
	for _, res := range reservations {
		event := queue.ReminderDueEvent{
			ReservationID:   res.ID,
			CustomerID:      res.CustomerID,
			ServiceID:       res.ServiceID,
			StaffID:         res.StaffID,
			ReservationDate: res.ReservationDate.Format(domain.DateFormat),
			StartTime:       res.StartTime.String(),
			PartySize:       res.PartySize,
		}

		if err := s.publisher.PublishReminderDue(ctx, event); err != nil {
			s.logger.Error("Dispatch: failed to publish reminder for reservation id=%d: %v", res.ID, err)
			continue
		}

		if err := s.reservationRepo.MarkReminderSent(ctx, res.ID); err != nil {
			s.logger.Error("Dispatch: failed to mark reservation id=%d: %v", res.ID, err)
			continue
		}

		sent++
	}

	if len(reservations) > 0 {
		s.logger.Info("Dispatch: sent %d of %d due reminders", sent, len(reservations))
	}

	return sent, nil
}
