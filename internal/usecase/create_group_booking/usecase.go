package create_group_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для создания групповой записи
type UseCase struct {
	reservationRepo ReservationRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	calendar        domain.BusinessCalendar
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		calendar:        domain.BusinessCalendar{},
		logger:          logger,
	}
}

// Execute выполняет use case создания групповой записи
// Группа занимает один интервал и проходит одну проверку конфликтов,
// как обычная запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateGroupBooking: customers=%d, service=%d, date=%s, time=%s",
		len(req.CustomerIDs), req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateGroupBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование каждого клиента группы
	for _, customerID := range req.CustomerIDs {
		if _, err := uc.catalogRepo.GetCustomerByID(ctx, customerID); err != nil {
			if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
				uc.logger.Warn("CreateGroupBooking: customer id=%d not found", customerID)
				return nil, fmt.Errorf("%w: customer %d", ErrCustomerNotFound, customerID)
			}
			uc.logger.Error("CreateGroupBooking: failed to get customer id=%d: %v", customerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
	}

	// 3. Получаем услугу - длительность копируется в бронирование
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateGroupBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateGroupBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := service.EffectiveDuration()

	// 4. Проверяем существование сотрудника, если он указан
	if req.StaffID != nil {
		if _, err := uc.catalogRepo.GetStaffByID(ctx, *req.StaffID); err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateGroupBooking: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateGroupBooking: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 5. Проверка конфликтов и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем активные бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.DayReservationsFilter{
			Date:            req.Date,
			StaffID:         req.StaffID,
			IncludeInactive: false,
		}

		reservations, err := uc.reservationRepo.ListByDay(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateGroupBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 5.2. Проверяем слот: рабочее окно + пересечения
		if err := domain.ValidateSlot(uc.calendar, req.StartTime, durationMinutes, req.StaffID, reservations); err != nil {
			switch {
			case errors.Is(err, domain.ErrOutsideOperatingHours):
				uc.logger.Warn("CreateGroupBooking: slot %s+%dmin outside operating hours", req.StartTime, durationMinutes)
				return ErrOutsideOperatingHours
			case errors.Is(err, domain.ErrSlotOccupied):
				uc.logger.Warn("CreateGroupBooking: slot %s occupied on %s", req.StartTime, req.Date.Format(domain.DateFormat))
				return ErrSlotOccupied
			default:
				return fmt.Errorf("%w: slot validation: %v", ErrInternal, err)
			}
		}

		// 5.3. Группа хранится одной строкой, владелец - первый клиент списка
		reservation := &domain.Reservation{
			CustomerID:      req.CustomerIDs[0],
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPlanned,
			Notes:           req.Notes,
			PartySize:       len(req.CustomerIDs),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateGroupBooking: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateGroupBooking: successfully created reservation id=%d, partySize=%d", result.ID, result.PartySize)

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		ServiceID:       result.ServiceID,
		StaffID:         result.StaffID,
		Date:            result.ReservationDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PartySize:       result.PartySize,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
