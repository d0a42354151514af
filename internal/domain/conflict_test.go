package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

func reservationAt(start types.TimeString, duration int, staffID *int64, status ReservationStatus) *Reservation {
	return &Reservation{
		ID:              1,
		CustomerID:      1,
		ServiceID:       1,
		StaffID:         staffID,
		ReservationDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: duration,
		Status:          status,
		PartySize:       1,
	}
}

func TestValidateSlot(t *testing.T) {
	calendar := BusinessCalendar{}

	t.Run("free day accepts valid slot", func(t *testing.T) {
		err := ValidateSlot(calendar, "10:00", 60, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("overlap in the middle is rejected", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, nil, StatusPlanned)}

		err := ValidateSlot(calendar, "10:30", 60, nil, existing)
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("adjacent slots do not conflict", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, nil, StatusPlanned)}

		// Ровно в момент окончания предыдущей записи
		assert.NoError(t, ValidateSlot(calendar, "11:00", 60, nil, existing))
		// Заканчивается ровно в момент начала
		assert.NoError(t, ValidateSlot(calendar, "09:00", 60, nil, existing))
	})

	t.Run("cancelled and waitlisted reservations never block", func(t *testing.T) {
		existing := []*Reservation{
			reservationAt("10:00", 60, nil, StatusCancelled),
			reservationAt("10:00", 60, nil, StatusWaitlisted),
		}

		assert.NoError(t, ValidateSlot(calendar, "10:00", 60, nil, existing))
	})

	t.Run("different staff members do not conflict", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, ptr.Ptr(int64(7)), StatusConfirmed)}

		err := ValidateSlot(calendar, "10:00", 60, ptr.Ptr(int64(8)), existing)
		assert.NoError(t, err)
	})

	t.Run("same staff member conflicts", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, ptr.Ptr(int64(7)), StatusConfirmed)}

		err := ValidateSlot(calendar, "10:30", 60, ptr.Ptr(int64(7)), existing)
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("staff-less reservation blocks every staff member", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, nil, StatusPlanned)}

		err := ValidateSlot(calendar, "10:00", 60, ptr.Ptr(int64(7)), existing)
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("staff-less candidate is checked against all staff", func(t *testing.T) {
		existing := []*Reservation{reservationAt("10:00", 60, ptr.Ptr(int64(7)), StatusPlanned)}

		err := ValidateSlot(calendar, "10:00", 60, nil, existing)
		assert.ErrorIs(t, err, ErrSlotOccupied)
	})

	t.Run("outside operating hours beats occupancy check", func(t *testing.T) {
		err := ValidateSlot(calendar, "17:30", 60, nil, nil)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)

		err = ValidateSlot(calendar, "08:00", 30, nil, nil)
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("last valid start is closing minus duration", func(t *testing.T) {
		assert.NoError(t, ValidateSlot(calendar, "17:00", 60, nil, nil))
		assert.ErrorIs(t, ValidateSlot(calendar, "17:01", 60, nil, nil), ErrOutsideOperatingHours)
	})
}
