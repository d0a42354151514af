package create_recurring_booking

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

type seriesLink struct {
	id       int64
	seriesID int64
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	links        []seriesLink
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
	f.reservations = append(f.reservations, rsv)
	return rsv, nil
}

func (f *fakeReservationRepo) LinkToSeries(_ context.Context, id, seriesID int64) error {
	f.links = append(f.links, seriesLink{id: id, seriesID: seriesID})
	for _, r := range f.reservations {
		if r.ID == id {
			r.SeriesID = ptr.Ptr(seriesID)
		}
	}
	return nil
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(existing []*domain.Reservation) (*UseCase, *fakeReservationRepo) {
	repo := &fakeReservationRepo{reservations: existing, nextID: int64(len(existing)) * 100}
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

func weeklyRequest(count int) *Request {
	return &Request{
		CustomerID: 42,
		ServiceID:  1,
		StartDate:  date(2025, time.January, 6),
		StartTime:  "10:00",
		Pattern:    "weekly",
		Count:      count,
	}
}

func TestUseCase_Execute_WeeklySeries(t *testing.T) {
	uc, repo := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), weeklyRequest(4))
	require.NoError(t, err)

	require.Len(t, resp.Created, 4)
	assert.Empty(t, resp.Skipped)
	assert.Equal(t, 60, resp.DurationMinutes)

	wantDates := []time.Time{
		date(2025, time.January, 6),
		date(2025, time.January, 13),
		date(2025, time.January, 20),
		date(2025, time.January, 27),
	}
	for i, occ := range resp.Created {
		assert.Equal(t, wantDates[i], occ.Date)
	}

	// Первая запись - якорь серии, ссылается сама на себя
	require.NotNil(t, resp.SeriesID)
	anchorID := resp.Created[0].ReservationID
	assert.Equal(t, anchorID, *resp.SeriesID)
	require.Len(t, repo.links, 1)
	assert.Equal(t, seriesLink{id: anchorID, seriesID: anchorID}, repo.links[0])

	// Остальные вхождения привязаны к якорю уже при создании
	for _, r := range repo.reservations[1:] {
		require.NotNil(t, r.SeriesID)
		assert.Equal(t, anchorID, *r.SeriesID)
	}
}

func TestUseCase_Execute_MonthlyYearRollover(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := weeklyRequest(2)
	req.Pattern = "monthly"
	req.StartDate = date(2025, time.December, 15)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Created, 2)
	assert.Equal(t, date(2025, time.December, 15), resp.Created[0].Date)
	assert.Equal(t, date(2026, time.January, 15), resp.Created[1].Date)
}

func TestUseCase_Execute_ConflictingOccurrenceSkipped(t *testing.T) {
	// Вторая дата серии уже занята
	uc, repo := newTestUseCase([]*domain.Reservation{
		{
			ID:              1,
			CustomerID:      10,
			ServiceID:       1,
			ReservationDate: date(2025, time.January, 13),
			StartTime:       "10:30",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
			PartySize:       1,
		},
	})

	resp, err := uc.Execute(context.Background(), weeklyRequest(4))
	require.NoError(t, err)

	require.Len(t, resp.Created, 3)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, date(2025, time.January, 13), resp.Skipped[0].Date)
	assert.Equal(t, "slot occupied", resp.Skipped[0].Reason)

	// Якорь - первое реально созданное вхождение
	require.NotNil(t, resp.SeriesID)
	assert.Equal(t, resp.Created[0].ReservationID, *resp.SeriesID)
	assert.Len(t, repo.links, 1)
}

func TestUseCase_Execute_AllOccurrencesConflict(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	req := weeklyRequest(2)
	req.StartTime = "17:30" // 60 минут не помещаются до закрытия

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, resp.SeriesID)
	assert.Empty(t, resp.Created)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, "outside operating hours", resp.Skipped[0].Reason)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "count below minimum", mutate: func(r *Request) { r.Count = 1 }},
		{name: "unknown pattern", mutate: func(r *Request) { r.Pattern = "yearly" }},
		{name: "empty pattern", mutate: func(r *Request) { r.Pattern = "" }},
		{name: "non-positive customer", mutate: func(r *Request) { r.CustomerID = 0 }},
		{name: "zero start date", mutate: func(r *Request) { r.StartDate = time.Time{} }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "ten" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := weeklyRequest(4)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	uc, _ := newTestUseCase(nil)

	t.Run("customer", func(t *testing.T) {
		req := weeklyRequest(2)
		req.CustomerID = 99

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("service", func(t *testing.T) {
		req := weeklyRequest(2)
		req.ServiceID = 99

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("staff", func(t *testing.T) {
		req := weeklyRequest(2)
		req.StaffID = ptr.Ptr(int64(99))

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})
}

func TestExpandDates(t *testing.T) {
	t.Run("daily", func(t *testing.T) {
		dates := expandDates(domain.PatternDaily, date(2025, time.January, 30), 3)
		assert.Equal(t, []time.Time{
			date(2025, time.January, 30),
			date(2025, time.January, 31),
			date(2025, time.February, 1),
		}, dates)
	})

	t.Run("monthly", func(t *testing.T) {
		dates := expandDates(domain.PatternMonthly, date(2025, time.November, 10), 3)
		assert.Equal(t, []time.Time{
			date(2025, time.November, 10),
			date(2025, time.December, 10),
			date(2026, time.January, 10),
		}, dates)
	})
}
