package create_recurring_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
)

// UseCase use case для создания серии повторяющихся бронирований
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

// Execute выполняет use case развертывания серии бронирований
// Вся серия обрабатывается в одной сериализуемой транзакции; конфликтующие
// вхождения пропускаются, остальные создаются (best-effort)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBooking: customer=%d, service=%d, pattern=%s, count=%d, start=%s %s",
		req.CustomerID, req.ServiceID, req.Pattern, req.Count, req.StartDate.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных, включая шаблон повторения и количество
	pattern, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateRecurringBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование клиента
	if _, err := uc.catalogRepo.GetCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateRecurringBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateRecurringBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 3. Получаем услугу - длительность одинаковая для всех вхождений
	service, err := uc.catalogRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateRecurringBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateRecurringBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	durationMinutes := service.EffectiveDuration()

	// 4. Проверяем существование сотрудника, если он указан
	if req.StaffID != nil {
		if _, err := uc.catalogRepo.GetStaffByID(ctx, *req.StaffID); err != nil {
			if errors.Is(err, catalogRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateRecurringBooking: staff id=%d not found", *req.StaffID)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateRecurringBooking: failed to get staff id=%d: %v", *req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 5. Разворачиваем шаблон в последовательность дат
	dates := expandDates(pattern, req.StartDate, req.Count)

	created := make([]CreatedOccurrence, 0, len(dates))
	skipped := make([]SkippedOccurrence, 0)
	var seriesID *int64

	// 6. Создаем вхождения в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Транзакция может быть перезапущена при конфликте сериализации,
		// результаты прошлой попытки сбрасываем
		created = created[:0]
		skipped = skipped[:0]
		seriesID = nil

		for _, date := range dates {
			// 6.1. Бронирования на дату вхождения с блокировкой (FOR UPDATE)
			filter := domain.DayReservationsFilter{
				Date:            date,
				StaffID:         req.StaffID,
				IncludeInactive: false,
			}

			reservations, err := uc.reservationRepo.ListByDay(txCtx, filter)
			if err != nil {
				uc.logger.Error("CreateRecurringBooking: failed to get reservations for %s: %v",
					date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
			}

			// 6.2. Конфликтующие вхождения пропускаем, серию не прерываем
			if err := domain.ValidateSlot(uc.calendar, req.StartTime, durationMinutes, req.StaffID, reservations); err != nil {
				reason := "slot occupied"
				if errors.Is(err, domain.ErrOutsideOperatingHours) {
					reason = "outside operating hours"
				}
				uc.logger.Info("CreateRecurringBooking: skipping %s %s: %s",
					date.Format(domain.DateFormat), req.StartTime, reason)
				skipped = append(skipped, SkippedOccurrence{Date: date, Reason: reason})
				continue
			}

			// 6.3. Создаем вхождение; все записи после первой ссылаются на якорь
			reservation := &domain.Reservation{
				CustomerID:       req.CustomerID,
				ServiceID:        req.ServiceID,
				StaffID:          req.StaffID,
				ReservationDate:  date,
				StartTime:        req.StartTime,
				DurationMinutes:  durationMinutes,
				Status:           domain.StatusPlanned,
				Notes:            req.Notes,
				PartySize:        domain.MinPartySize,
				RecurringPattern: &pattern,
				SeriesID:         seriesID,
			}

			result, err := uc.reservationRepo.Create(txCtx, reservation)
			if err != nil {
				uc.logger.Error("CreateRecurringBooking: failed to create occurrence for %s: %v",
					date.Format(domain.DateFormat), err)
				return fmt.Errorf("%w: failed to create occurrence: %w", ErrInternal, err)
			}

			// 6.4. Первая созданная запись становится якорем серии и
			// ссылается сама на себя
			if seriesID == nil {
				if err := uc.reservationRepo.LinkToSeries(txCtx, result.ID, result.ID); err != nil {
					uc.logger.Error("CreateRecurringBooking: failed to link anchor id=%d: %v", result.ID, err)
					return fmt.Errorf("%w: failed to link series anchor: %w", ErrInternal, err)
				}
				anchorID := result.ID
				seriesID = &anchorID
			}

			created = append(created, CreatedOccurrence{ReservationID: result.ID, Date: date})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateRecurringBooking: series done, created=%d, skipped=%d", len(created), len(skipped))

	return &Response{
		SeriesID:        seriesID,
		DurationMinutes: durationMinutes,
		Created:         created,
		Skipped:         skipped,
	}, nil
}
