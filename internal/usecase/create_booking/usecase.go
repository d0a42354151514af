package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции,
// чтобы два конкурирующих запроса не заняли один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиента
	if _, err := uc.catalogRepo.GetCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 3. Получаем услугу - длительность копируется в бронирование
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := service.EffectiveDuration()

	// 4. Проверяем существование сотрудника, если он указан
	if req.StaffID != nil {
		if _, err := uc.catalogRepo.GetStaffByID(ctx, *req.StaffID); err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateBooking: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", *req.StaffID, err)
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
			uc.logger.Error("CreateBooking: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 5.2. Проверяем слот: рабочее окно + пересечения
		status := domain.StatusPlanned
		if err := domain.ValidateSlot(uc.calendar, req.StartTime, durationMinutes, req.StaffID, reservations); err != nil {
			switch {
			case errors.Is(err, domain.ErrOutsideOperatingHours):
				uc.logger.Warn("CreateBooking: slot %s+%dmin outside operating hours", req.StartTime, durationMinutes)
				return ErrOutsideOperatingHours
			case errors.Is(err, domain.ErrSlotOccupied):
				if !req.JoinWaitlist {
					uc.logger.Warn("CreateBooking: slot %s occupied on %s", req.StartTime, req.Date.Format(domain.DateFormat))
					return ErrSlotOccupied
				}
				// Слот занят, но клиент согласен на лист ожидания
				status = domain.StatusWaitlisted
				uc.logger.Info("CreateBooking: slot %s occupied, customer %d joins waitlist", req.StartTime, req.CustomerID)
			default:
				return fmt.Errorf("%w: slot validation: %v", ErrInternal, err)
			}
		}

		// 5.3. Создаем бронирование
		reservation := &domain.Reservation{
			CustomerID:      req.CustomerID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			ReservationDate: req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          status,
			Notes:           req.Notes,
			PartySize:       domain.MinPartySize,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%d, status=%s", result.ID, result.Status)

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
