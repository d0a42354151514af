package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

var reservationColumns = []string{
	"id",
	"customer_id",
	"service_id",
	"staff_id",
	"reservation_date",
	"start_time",
	"duration_minutes",
	"status",
	"notes",
	"party_size",
	"recurring_pattern",
	"series_id",
	"reminder_sent",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Проверка конфликтов выполняется на уровне usecase непосредственно перед
// вставкой; при создании с проверкой доступности слота запись и проверка
// должны идти в одной SERIALIZABLE транзакции.
func (r *Repository) Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_id",
			"service_id",
			"staff_id",
			"reservation_date",
			"start_time",
			"duration_minutes",
			"status",
			"notes",
			"party_size",
			"recurring_pattern",
			"series_id",
		).
		Values(
			rsv.CustomerID,
			rsv.ServiceID,
			rsv.StaffID,
			rsv.ReservationDate,
			rsv.StartTime,
			rsv.DurationMinutes,
			rsv.Status,
			rsv.Notes,
			rsv.PartySize,
			rsv.RecurringPattern,
			rsv.SeriesID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rsv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return rsv, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rsv, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return rsv, nil
}

// ListByDay получает бронирования на дату с учетом фильтра по мастеру
//
// Записи без мастера (staff_id IS NULL) занимают календарь всех мастеров,
// поэтому при фильтрации по конкретному мастеру они попадают в выборку всегда.
// По умолчанию отмененные и ожидающие в листе ожидания исключаются -
// они не занимают календарь.
//
// Внутри транзакции выборка блокируется через FOR UPDATE: это закрывает гонку
// между проверкой доступности и вставкой при параллельных бронированиях.
func (r *Repository) ListByDay(ctx context.Context, filter domain.DayReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"reservation_date": filter.Date})

	// Фильтрация по мастеру: конкретный мастер + глобальные блоки
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"staff_id": *filter.StaffID},
			squirrel.Eq{"staff_id": nil},
		})
	}

	// Исключаем статусы, не занимающие календарь
	if !filter.IncludeInactive {
		nonBlocking := make([]string, len(domain.NonBlockingStatuses))
		for i, s := range domain.NonBlockingStatuses {
			nonBlocking[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": nonBlocking})
	}

	selectBuilder = selectBuilder.OrderBy("start_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDay - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("reservation_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// GetSeriesMembers получает все бронирования серии, отсортированные по дате
func (r *Repository) GetSeriesMembers(ctx context.Context, seriesID int64) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"series_id": seriesID}).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSeriesMembers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeriesMembers - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования
// Переходы статусов определяются внешней системой, ядро их не вычисляет
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CancelSeries отменяет все бронирования серии, включая якорную запись
// Уже отмененные и завершенные записи не трогает
func (r *Repository) CancelSeries(ctx context.Context, seriesID int64, reason string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Or{
			squirrel.Eq{"series_id": seriesID},
			squirrel.Eq{"id": seriesID},
		}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusPlanned),
			string(domain.StatusConfirmed),
			string(domain.StatusWaitlisted),
		}}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CancelSeries - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelSeries - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelSeries - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return 0, ErrSeriesNotFound
	}

	return rowsAffected, nil
}

// LinkToSeries устанавливает ссылку на якорную запись серии
// Ссылка неизменяема: установка поверх существующей запрещена
func (r *Repository) LinkToSeries(ctx context.Context, id int64, seriesID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("series_id", seriesID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"series_id": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: LinkToSeries - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: LinkToSeries - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: LinkToSeries - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSeriesAlreadyLinked
	}

	return nil
}

// MarkReminderSent помечает напоминание отправленным
// Флаг переключается только из false в true, обратно никогда
func (r *Repository) MarkReminderSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ListDueForReminder получает запланированные бронирования без отправленного
// напоминания, начало которых попадает в окно (now, now + lookaheadHours]
func (r *Repository) ListDueForReminder(ctx context.Context, now time.Time, lookaheadHours int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	horizon := now.Add(time.Duration(lookaheadHours) * time.Hour)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": domain.StatusPlanned}).
		Where(squirrel.Eq{"reminder_sent": false}).
		Where(squirrel.Expr("reservation_date + start_time::time > ?", now)).
		Where(squirrel.Expr("reservation_date + start_time::time <= ?", horizon)).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListDueForReminder - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueForReminder - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку в бронирование
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var rsv domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rsv.ID,
		&rsv.CustomerID,
		&rsv.ServiceID,
		&rsv.StaffID,
		&rsv.ReservationDate,
		&rsv.StartTime,
		&rsv.DurationMinutes,
		&rsv.Status,
		&rsv.Notes,
		&rsv.PartySize,
		&rsv.RecurringPattern,
		&rsv.SeriesID,
		&rsv.ReminderSent,
		&rsv.CancellationReason,
		&rsv.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rsv.CreatedAt = createdAt.Time
	rsv.UpdatedAt = updatedAt.Time

	return &rsv, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, rsv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %w", ErrScanRow, err)
	}

	return reservations, nil
}
