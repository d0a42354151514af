package create_group_booking

import (
	"context"

	createGroup "github.com/m04kA/Salon-BookingService/internal/usecase/create_group_booking"
)

type CreateGroupBookingUseCase interface {
	Execute(ctx context.Context, req *createGroup.Request) (*createGroup.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
