package reminders_due

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

type RemindersService interface {
	DueForReminder(ctx context.Context, lookaheadHours int) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
