package domain

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Slot represents a candidate appointment start time aligned to the scheduling grid.
// Ephemeral value, never persisted.
type Slot struct {
	Date      time.Time
	StartTime types.TimeString
}

// End возвращает конец занимаемого интервала для запрошенной длительности
func (s Slot) End(durationMinutes int) (types.TimeString, error) {
	return s.StartTime.AddMinutes(durationMinutes)
}
