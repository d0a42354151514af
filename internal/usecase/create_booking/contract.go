package create_booking

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListByDay(ctx context.Context, filter domain.DayReservationsFilter) ([]*domain.Reservation, error)
}

// CatalogRepository интерфейс репозитория справочников салона
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetStaffByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
