package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) ListByDay(_ context.Context, filter domain.DayReservationsFilter) ([]*domain.Reservation, error) {
	var result []*domain.Reservation
	for _, r := range f.reservations {
		if !r.ReservationDate.Equal(filter.Date) {
			continue
		}
		if filter.StaffID != nil && r.StaffID != nil && *r.StaffID != *filter.StaffID {
			continue
		}
		if !filter.IncludeInactive && !r.IsBlocking() {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeReservationRepo) Create(_ context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	rsv.ID = f.nextID
	rsv.CreatedAt = time.Now()
	rsv.UpdatedAt = rsv.CreatedAt
	f.reservations = append(f.reservations, rsv)
	return rsv, nil
}

type fakeCatalogRepo struct {
	services  map[int64]*domain.Service
	staff     map[int64]*domain.Staff
	customers map[int64]*domain.Customer
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	if svc, ok := f.services[id]; ok {
		return svc, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalogRepo) GetStaffByID(_ context.Context, id int64) (*domain.Staff, error) {
	if st, ok := f.staff[id]; ok {
		return st, nil
	}
	return nil, catalogRepo.ErrStaffNotFound
}

func (f *fakeCatalogRepo) GetCustomerByID(_ context.Context, id int64) (*domain.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCustomerNotFound
}

func testDate() time.Time {
	return time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(existing []*domain.Reservation) (*UseCase, *fakeReservationRepo) {
	repo := &fakeReservationRepo{reservations: existing, nextID: int64(len(existing))}
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Haircut", DurationMinutes: ptr.Ptr(60), Active: true},
		},
		staff: map[int64]*domain.Staff{
			7: {ID: 7, FirstName: "Anna", LastName: "Petrova", Active: true},
		},
		customers: map[int64]*domain.Customer{
			42: {ID: 42, FirstName: "Ivan", LastName: "Orlov"},
		},
	}
	return NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{}), repo
}

func existingReservation(start types.TimeString, duration int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              1,
		CustomerID:      10,
		ServiceID:       1,
		ReservationDate: testDate(),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
		PartySize:       1,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID: 42,
		ServiceID:  1,
		Date:       testDate(),
		StartTime:  "10:00",
	}
}

func TestUseCase_Execute_CreatesReservation(t *testing.T) {
	uc, repo := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPlanned), resp.Status)
	assert.Equal(t, 1, resp.PartySize)
	assert.Len(t, repo.reservations, 1)
}

func TestUseCase_Execute_OverlapRejected(t *testing.T) {
	uc, repo := newTestUseCase([]*domain.Reservation{
		existingReservation("10:00", 60, domain.StatusPlanned),
	})

	req := validRequest()
	req.StartTime = "10:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.Len(t, repo.reservations, 1)
}

func TestUseCase_Execute_AdjacentSlotAccepted(t *testing.T) {
	uc, _ := newTestUseCase([]*domain.Reservation{
		existingReservation("10:00", 60, domain.StatusPlanned),
	})

	req := validRequest()
	req.StartTime = "11:00"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPlanned), resp.Status)
}

func TestUseCase_Execute_CancelledDoesNotBlock(t *testing.T) {
	uc, _ := newTestUseCase([]*domain.Reservation{
		existingReservation("10:00", 60, domain.StatusCancelled),
	})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestUseCase_Execute_OutsideOperatingHours(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	t.Run("interval runs past closing", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "17:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("start before opening", func(t *testing.T) {
		req := validRequest()
		req.StartTime = "08:30"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})
}

func TestUseCase_Execute_GlobalBlockConflictsWithStaff(t *testing.T) {
	uc, _ := newTestUseCase([]*domain.Reservation{
		existingReservation("10:00", 60, domain.StatusPlanned), // без мастера
	})

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(7))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotOccupied)
}

func TestUseCase_Execute_WaitlistOnConflict(t *testing.T) {
	uc, repo := newTestUseCase([]*domain.Reservation{
		existingReservation("10:00", 60, domain.StatusPlanned),
	})

	req := validRequest()
	req.JoinWaitlist = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusWaitlisted), resp.Status)
	require.Len(t, repo.reservations, 2)

	// Запись в листе ожидания не занимает время: следующий клиент может занять слот,
	// если оригинал отменится, и не конфликтует с существующими
	assert.False(t, repo.reservations[1].IsBlocking())
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "non-positive customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "non-positive service", mutate: func(r *Request) { r.ServiceID = -1 }},
		{name: "non-positive staff", mutate: func(r *Request) { r.StaffID = ptr.Ptr(int64(0)) }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	t.Run("customer", func(t *testing.T) {
		req := validRequest()
		req.CustomerID = 99

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("service", func(t *testing.T) {
		req := validRequest()
		req.ServiceID = 99

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("staff", func(t *testing.T) {
		req := validRequest()
		req.StaffID = ptr.Ptr(int64(99))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}
