package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов для бронирования
// Доступность всегда считается по живым данным, без кеширования
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	calendar        domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		calendar:        domain.BusinessCalendar{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу - она определяет длительность слота
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := service.EffectiveDuration()

	// 3. Проверяем существование сотрудника, если он указан
	if req.StaffID != nil {
		if _, err := uc.catalogRepo.GetStaffByID(ctx, *req.StaffID); err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("GetAvailableSlots: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 4. Генерируем сетку допустимых стартов
	timeSlots, err := generateTimeSlots(uc.calendar, durationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 5. Получаем блокирующие бронирования на эту дату
	// При фильтре по сотруднику выборка всегда включает записи без мастера (глобальные блоки)
	filter := domain.DayReservationsFilter{
		Date:            req.Date,
		StaffID:         req.StaffID,
		IncludeInactive: false,
	}

	reservations, err := uc.reservationRepo.ListByDay(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Оставляем только свободные старты
	slots := filterFreeSlots(timeSlots, durationMinutes, reservations)

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for service=%d, date=%s",
		len(slots), len(timeSlots), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		DurationMinutes: durationMinutes,
		Slots:           slots,
	}, nil
}
