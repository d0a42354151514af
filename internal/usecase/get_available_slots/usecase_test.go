package get_available_slots

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

// fakeReservationRepo повторяет семантику фильтрации реального репозитория:
// записи без мастера попадают в выборку всегда, неактивные отбрасываются
type fakeReservationRepo struct {
	reservations []*domain.Reservation
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

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
	staff    map[int64]*domain.Staff
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

func testDate() time.Time {
	return time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(reservations []*domain.Reservation) *UseCase {
	catalog := &fakeCatalogRepo{
		services: map[int64]*domain.Service{
			1: {ID: 1, Name: "Haircut", DurationMinutes: ptr.Ptr(60), Active: true},
			2: {ID: 2, Name: "Quick trim", DurationMinutes: ptr.Ptr(30), Active: true},
			3: {ID: 3, Name: "Consultation", Active: true}, // длительность не задана
		},
		staff: map[int64]*domain.Staff{
			7: {ID: 7, FirstName: "Anna", LastName: "Petrova", Active: true},
		},
	}
	return NewUseCase(&fakeReservationRepo{reservations: reservations}, catalog, nopLogger{})
}

func reservation(start types.TimeString, duration int, staffID *int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		CustomerID:      1,
		ServiceID:       1,
		StaffID:         staffID,
		ReservationDate: testDate(),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
		PartySize:       1,
	}
}

func TestUseCase_Execute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 1})
	require.NoError(t, err)

	// Сетка с шагом 30 минут: 09:00 ... 17:00, последний старт = закрытие - длительность
	require.Len(t, resp.Slots, 17)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1])
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestUseCase_Execute_OccupiedSlotRemoved(t *testing.T) {
	uc := newTestUseCase([]*domain.Reservation{
		reservation("10:00", 60, nil, domain.StatusPlanned),
	})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 1})
	require.NoError(t, err)

	// Старты 09:30, 10:00 и 10:30 пересекаются с интервалом 10:00-11:00
	assert.NotContains(t, resp.Slots, types.TimeString("09:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("10:30"))

	// Граничащие старты остаются свободными
	assert.Contains(t, resp.Slots, types.TimeString("09:00"))
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
	assert.Len(t, resp.Slots, 14)
}

func TestUseCase_Execute_CancelledDoesNotBlock(t *testing.T) {
	uc := newTestUseCase([]*domain.Reservation{
		reservation("10:00", 60, nil, domain.StatusCancelled),
		reservation("12:00", 60, nil, domain.StatusWaitlisted),
	})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 1})
	require.NoError(t, err)

	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
	assert.Contains(t, resp.Slots, types.TimeString("12:00"))
	assert.Len(t, resp.Slots, 17)
}

func TestUseCase_Execute_StaffFilter(t *testing.T) {
	uc := newTestUseCase([]*domain.Reservation{
		reservation("10:00", 60, ptr.Ptr(int64(9)), domain.StatusPlanned), // другой мастер
		reservation("14:00", 60, nil, domain.StatusPlanned),               // глобальный блок
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate(),
		ServiceID: 1,
		StaffID:   ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)

	// Запись другого мастера не мешает, запись без мастера блокирует всех
	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("14:00"))
	assert.NotContains(t, resp.Slots, types.TimeString("13:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("14:30"))
}

func TestUseCase_Execute_ShortServiceGrid(t *testing.T) {
	uc := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 2})
	require.NoError(t, err)

	// 30-минутная услуга: последний старт 17:30
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[len(resp.Slots)-1])
	assert.Equal(t, 30, resp.DurationMinutes)
}

func TestUseCase_Execute_DefaultDuration(t *testing.T) {
	uc := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 3})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDurationMinutes, resp.DurationMinutes)
}

func TestUseCase_Execute_SlotsPassConflictValidation(t *testing.T) {
	// Каждый предложенный слот обязан проходить ту же проверку,
	// которой подвергается создание бронирования
	dayReservations := []*domain.Reservation{
		reservation("09:30", 60, ptr.Ptr(int64(7)), domain.StatusPlanned),
		reservation("11:00", 30, ptr.Ptr(int64(9)), domain.StatusConfirmed),
		reservation("14:00", 60, nil, domain.StatusPlanned), // глобальный блок
		reservation("16:00", 60, ptr.Ptr(int64(7)), domain.StatusCancelled),
	}
	uc := newTestUseCase(dayReservations)

	tests := []struct {
		name    string
		request *Request
	}{
		{name: "any staff, 60 min", request: &Request{Date: testDate(), ServiceID: 1}},
		{name: "any staff, 30 min", request: &Request{Date: testDate(), ServiceID: 2}},
		{name: "staff 7, 60 min", request: &Request{Date: testDate(), ServiceID: 1, StaffID: ptr.Ptr(int64(7))}},
		{name: "staff 7, 30 min", request: &Request{Date: testDate(), ServiceID: 2, StaffID: ptr.Ptr(int64(7))}},
	}

	calendar := domain.BusinessCalendar{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), tt.request)
			require.NoError(t, err)
			require.NotEmpty(t, resp.Slots)

			for _, slot := range resp.Slots {
				err := domain.ValidateSlot(calendar, slot, resp.DurationMinutes, tt.request.StaffID, dayReservations)
				assert.NoError(t, err, "slot %s must be bookable", slot)
			}
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	uc := newTestUseCase(nil)

	t.Run("unknown service", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 99})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("unknown staff", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			Date:      testDate(),
			ServiceID: 1,
			StaffID:   ptr.Ptr(int64(99)),
		})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{ServiceID: 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive service id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: testDate(), ServiceID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
