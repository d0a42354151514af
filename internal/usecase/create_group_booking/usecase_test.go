package create_group_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

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
			1: {ID: 1, Name: "Spa package", DurationMinutes: ptr.Ptr(90), Active: true},
		},
		staff: map[int64]*domain.Staff{
			7: {ID: 7, FirstName: "Anna", LastName: "Petrova", Active: true},
		},
		customers: map[int64]*domain.Customer{
			42: {ID: 42, FirstName: "Ivan", LastName: "Orlov"},
			43: {ID: 43, FirstName: "Olga", LastName: "Orlova"},
			44: {ID: 44, FirstName: "Pavel", LastName: "Orlov"},
		},
	}
	return NewUseCase(repo, catalog, fakeTxManager{}, nopLogger{}), repo
}

func validRequest() *Request {
	return &Request{
		CustomerIDs: []int64{42, 43, 44},
		ServiceID:   1,
		Date:        testDate(),
		StartTime:   "11:00",
	}
}

func TestUseCase_Execute_CreatesGroupReservation(t *testing.T) {
	uc, repo := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Группа хранится одной строкой: владелец - первый клиент списка
	assert.Equal(t, int64(42), resp.CustomerID)
	assert.Equal(t, 3, resp.PartySize)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPlanned), resp.Status)

	require.Len(t, repo.reservations, 1)
	assert.Equal(t, 3, repo.reservations[0].PartySize)
	assert.True(t, repo.reservations[0].IsGroupBooking())
}

func TestUseCase_Execute_SingleMemberGroup(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := validRequest()
	req.CustomerIDs = []int64{42}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.PartySize)
}

func TestUseCase_Execute_SlotOccupied(t *testing.T) {
	uc, repo := newTestUseCase([]*domain.Reservation{
		{
			ID:              1,
			CustomerID:      10,
			ServiceID:       1,
			ReservationDate: testDate(),
			StartTime:       "12:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			PartySize:       1,
		},
	})

	// 11:00 + 90 минут пересекается с 12:00-13:00
	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.Len(t, repo.reservations, 1)
}

func TestUseCase_Execute_OutsideOperatingHours(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := validRequest()
	req.StartTime = "17:00" // 90 минут не помещаются до закрытия

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideOperatingHours)
}

func TestUseCase_Execute_UnknownGroupMember(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := validRequest()
	req.CustomerIDs = []int64{42, 99}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "empty customer list", mutate: func(r *Request) { r.CustomerIDs = nil }},
		{name: "non-positive member id", mutate: func(r *Request) { r.CustomerIDs = []int64{42, 0} }},
		{name: "non-positive service", mutate: func(r *Request) { r.ServiceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "11:0" }},
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

func TestUseCase_Execute_StaffNotFound(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := validRequest()
	req.StaffID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
