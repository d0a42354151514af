package create_recurring_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// expandDates разворачивает шаблон повторения в детерминированную
// последовательность дат начиная со стартовой. Для monthly декабрь
// переходит в январь следующего года.
func expandDates(pattern domain.RecurrencePattern, startDate time.Time, count int) []time.Time {
	dates := make([]time.Time, 0, count)
	current := startDate

	for i := 0; i < count; i++ {
		dates = append(dates, current)
		current = pattern.NextDate(current)
	}

	return dates
}
