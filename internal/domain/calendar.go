package domain

import "github.com/m04kA/Salon-BookingService/pkg/types"

// BusinessCalendar defines the fixed daily operating window and slot granularity.
// The values are configuration constants of the salon, never derived from stored
// reservations. Pure value type, no state.
type BusinessCalendar struct{}

// OpeningTime returns the daily opening time
func (BusinessCalendar) OpeningTime() types.TimeString {
	return openingTime
}

// ClosingTime returns the daily closing time
func (BusinessCalendar) ClosingTime() types.TimeString {
	return closingTime
}

// SlotGranularityMinutes returns the scheduling grid step
func (BusinessCalendar) SlotGranularityMinutes() int {
	return slotGranularityMinutes
}

// FitsOperatingWindow проверяет, что интервал [start, start+duration) целиком
// внутри рабочего окна. Последний допустимый старт = закрытие - длительность.
func (c BusinessCalendar) FitsOperatingWindow(start types.TimeString, durationMinutes int) bool {
	if start.IsBefore(c.OpeningTime()) {
		return false
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !end.IsAfter(c.ClosingTime())
}
