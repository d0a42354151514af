package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(reservation), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching reservations for customer=%d, status=%v", req.CustomerID, req.Status)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d reservations for customer=%d", len(reservations), req.CustomerID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Если запись входит в серию и запрошена отмена серии, отменяются все
// активные записи серии одним вызовом
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d, series=%v", reservationID, req.CancelSeries)

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отмена всей серии по любому её участнику
	if req.CancelSeries && reservation.IsSeriesMember() {
		cancelled, err := s.reservationRepo.CancelSeries(ctx, *reservation.SeriesID, req.CancellationReason)
		if err != nil {
			s.logger.Error("Cancel: failed to cancel series id=%d: %v", *reservation.SeriesID, err)
			return nil, fmt.Errorf("%w: Cancel - failed to cancel series: %v", ErrInternal, err)
		}
		if cancelled == 0 {
			s.logger.Warn("Cancel: series id=%d has no active reservations", *reservation.SeriesID)
			return nil, ErrCannotCancel
		}

		s.logger.Info("Cancel: cancelled %d reservations of series id=%d", cancelled, *reservation.SeriesID)
		return &models.CancelResponse{CancelledCount: cancelled}, nil
	}

	// Завершенные и уже отмененные записи отменить нельзя
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d in status %s cannot be cancelled", reservationID, reservation.Status)
		return nil, ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, reservationID, req.CancellationReason); err != nil {
		s.logger.Error("Cancel: failed to cancel reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: Cancel - failed to cancel: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return &models.CancelResponse{CancelledCount: 1}, nil
}

// UpdateStatus обновляет статус бронирования
// Отмена через этот метод запрещена - для нее есть Cancel с причиной
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d, new status=%s", reservationID, req.Status)

	status, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	if status == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation must go through Cancel")
		return nil, ErrInvalidStatus
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if reservation.IsCancelled() {
		s.logger.Warn("UpdateStatus: reservation id=%d is cancelled, status is final", reservationID)
		return nil, ErrInvalidStatus
	}

	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, status); err != nil {
		s.logger.Error("UpdateStatus: failed to update reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to update: %v", ErrInternal, err)
	}

	updated, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to reload reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - failed to reload: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d now has status=%s", reservationID, updated.Status)
	return models.FromDomainReservation(updated), nil
}
