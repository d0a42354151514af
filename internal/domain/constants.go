package domain

import "github.com/m04kA/Salon-BookingService/pkg/types"

// Operating window of the salon (fixed configuration constants)
const (
	openingTime            types.TimeString = "09:00"
	closingTime            types.TimeString = "18:00"
	slotGranularityMinutes                  = 30
)

// Business validation constants
const (
	DefaultDurationMinutes = 60 // используется, если у услуги не задана длительность
	MinPartySize           = 1
	MinOccurrenceCount     = 2 // серия из одного вхождения - это обычная запись
	MaxNotesLength         = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// NonBlockingStatuses статусы, не занимающие календарь
// Используются при фильтрации для подсчета конфликтов
var NonBlockingStatuses = []ReservationStatus{
	StatusCancelled,
	StatusWaitlisted,
}

// ValidStatuses полный список допустимых статусов бронирования
var ValidStatuses = []ReservationStatus{
	StatusPlanned,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusWaitlisted,
}
