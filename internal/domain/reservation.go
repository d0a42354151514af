package domain

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPlanned    ReservationStatus = "planned"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusWaitlisted ReservationStatus = "waitlisted"
)

// Reservation represents a committed appointment in the salon calendar
type Reservation struct {
	ID              int64
	CustomerID      int64
	ServiceID       int64
	StaffID         *int64 // nil = без предпочтения мастера, занимает календарь всех мастеров
	ReservationDate time.Time
	StartTime       types.TimeString
	DurationMinutes int // копируется из услуги при создании, дальнейшие изменения услуги не влияют
	Status          ReservationStatus
	Notes           *string
	PartySize       int // >= 1; групповая запись хранится одной строкой

	// Series linkage
	RecurringPattern *RecurrencePattern
	SeriesID         *int64 // ID якорной записи серии; у первой записи указывает на саму себя

	ReminderSent bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the reservation occupies its time interval
// for conflict purposes. Cancelled and waitlisted reservations never block:
// a waitlisted entry is a parked request for a slot that is already contested.
func (r *Reservation) IsBlocking() bool {
	return r.Status != StatusCancelled && r.Status != StatusWaitlisted
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPlanned || r.Status == StatusConfirmed || r.Status == StatusWaitlisted
}

// IsGlobalBlock returns true if the reservation has no staff preference
// and therefore occupies every staff member's calendar
func (r *Reservation) IsGlobalBlock() bool {
	return r.StaffID == nil
}

// IsSeriesMember returns true if the reservation belongs to a recurring series
func (r *Reservation) IsSeriesMember() bool {
	return r.SeriesID != nil
}

// IsGroupBooking returns true if the reservation represents a party of more than one
func (r *Reservation) IsGroupBooking() bool {
	return r.PartySize > 1
}

// EndTime возвращает время окончания интервала [start, start+duration)
func (r *Reservation) EndTime() (types.TimeString, error) {
	return r.StartTime.AddMinutes(r.DurationMinutes)
}

// DayReservationsFilter фильтр для выборки бронирований на дату
type DayReservationsFilter struct {
	Date            time.Time // Обязательный параметр
	StaffID         *int64    // Фильтр по мастеру; записи без мастера попадают в выборку всегда (глобальные блоки)
	IncludeInactive bool      // Включать ли отмененные и ожидающие в листе ожидания
}
