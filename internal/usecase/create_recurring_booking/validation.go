package create_recurring_booking

import (
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.RecurrencePattern, error) {
	if req.CustomerID <= 0 {
		return "", fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return "", fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return "", fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return "", fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return "", fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	pattern, err := domain.ParseRecurrencePattern(req.Pattern)
	if err != nil {
		return "", fmt.Errorf("%w: pattern must be one of daily, weekly, monthly", ErrInvalidInput)
	}

	// Серия из одного вхождения - это обычная запись
	if req.Count < domain.MinOccurrenceCount {
		return "", fmt.Errorf("%w: count must be at least %d", ErrInvalidInput, domain.MinOccurrenceCount)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return pattern, nil
}

