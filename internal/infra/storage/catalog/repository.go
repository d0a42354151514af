package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для чтения справочников салона (услуги, сотрудники, клиенты)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"category",
		"duration_minutes",
		"price",
		"active",
		"created_at",
	).
		From("services").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var category sql.NullString
	var duration sql.NullInt64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&category,
		&duration,
		&svc.Price,
		&svc.Active,
		&svc.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: GetServiceByID - service %d", ErrServiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - execute select: %v", ErrExecQuery, err)
	}

	if category.Valid {
		svc.Category = &category.String
	}
	if duration.Valid {
		d := int(duration.Int64)
		svc.DurationMinutes = &d
	}

	return &svc, nil
}

// GetStaffByID получает сотрудника по ID
func (r *Repository) GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"role",
		"active",
		"created_at",
	).
		From("staff").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - build select query: %v", ErrBuildQuery, err)
	}

	var st domain.Staff
	var email, role sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&st.ID,
		&st.FirstName,
		&st.LastName,
		&email,
		&role,
		&st.Active,
		&st.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: GetStaffByID - staff %d", ErrStaffNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffByID - execute select: %v", ErrExecQuery, err)
	}

	if email.Valid {
		st.Email = &email.String
	}
	if role.Valid {
		st.Role = &role.String
	}

	return &st, nil
}

// GetCustomerByID получает клиента по ID
func (r *Repository) GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"first_name",
		"last_name",
		"email",
		"phone",
		"created_at",
		"updated_at",
	).
		From("customers").
		Where("id = ?", id).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	var email, phone sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&email,
		&phone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: GetCustomerByID - customer %d", ErrCustomerNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerByID - execute select: %v", ErrExecQuery, err)
	}

	if email.Valid {
		c.Email = &email.String
	}
	if phone.Valid {
		c.Phone = &phone.String
	}

	return &c, nil
}
