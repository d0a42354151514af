package domain

import (
	"errors"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

var (
	// ErrOutsideOperatingHours возвращается, когда интервал не помещается в рабочее окно
	ErrOutsideOperatingHours = errors.New("domain: slot is outside operating hours")

	// ErrSlotOccupied возвращается, когда интервал пересекается с активным бронированием
	ErrSlotOccupied = errors.New("domain: slot is already occupied")
)

// ValidateSlot проверяет кандидата на бронирование против рабочего окна и
// списка бронирований на эту дату. Вызывается непосредственно перед каждой
// записью в хранилище, всегда по живым данным.
//
// Пересечение интервалов строгое: бронирование, заканчивающееся ровно в момент
// начала кандидата (или наоборот), конфликтом не считается.
func ValidateSlot(
	calendar BusinessCalendar,
	start types.TimeString,
	durationMinutes int,
	staffID *int64,
	dayReservations []*Reservation,
) error {
	if !calendar.FitsOperatingWindow(start, durationMinutes) {
		return ErrOutsideOperatingHours
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return ErrOutsideOperatingHours
	}

	for _, res := range dayReservations {
		if !res.IsBlocking() {
			continue
		}

		// Запись с другим мастером не мешает; записи без мастера блокируют всех,
		// кандидат без мастера проверяется против всех записей
		if staffID != nil && res.StaffID != nil && *res.StaffID != *staffID {
			continue
		}

		resEnd, err := res.EndTime()
		if err != nil {
			continue
		}

		if res.StartTime.IsBefore(end) && resEnd.IsAfter(start) {
			return ErrSlotOccupied
		}
	}

	return nil
}
