package create_recurring_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	createRecurring "github.com/m04kA/Salon-BookingService/internal/usecase/create_recurring_booking"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// CreateRecurringBookingRequest HTTP request model
type CreateRecurringBookingRequest struct {
	CustomerID int64   `json:"customerId"`
	ServiceID  int64   `json:"serviceId"`
	StaffID    *int64  `json:"staffId,omitempty"`
	StartDate  string  `json:"startDate"` // "2025-10-15", дата первого вхождения
	StartTime  string  `json:"startTime"` // "10:00", одинаковое для всех вхождений
	Pattern    string  `json:"pattern"`   // daily | weekly | monthly
	Count      int     `json:"count"`     // количество вхождений, >= 2
	Notes      *string `json:"notes,omitempty"`
}

// OccurrenceResponse созданное вхождение серии
type OccurrenceResponse struct {
	ReservationID int64  `json:"reservationId"`
	Date          string `json:"date"`
}

// SkippedResponse пропущенное вхождение серии
type SkippedResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RecurringBookingResponse HTTP response model
type RecurringBookingResponse struct {
	SeriesID        *int64               `json:"seriesId,omitempty"`
	DurationMinutes int                  `json:"durationMinutes"`
	Created         []OccurrenceResponse `json:"created"`
	Skipped         []SkippedResponse    `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringBookingRequest) ToUseCaseRequest() (*createRecurring.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createRecurring.Request{
		CustomerID: r.CustomerID,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		StartDate:  startDate,
		StartTime:  startTime,
		Pattern:    r.Pattern,
		Count:      r.Count,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringBookingResponse {
	created := make([]OccurrenceResponse, len(resp.Created))
	for i, occ := range resp.Created {
		created[i] = OccurrenceResponse{
			ReservationID: occ.ReservationID,
			Date:          occ.Date.Format(domain.DateFormat),
		}
	}

	skipped := make([]SkippedResponse, len(resp.Skipped))
	for i, occ := range resp.Skipped {
		skipped[i] = SkippedResponse{
			Date:   occ.Date.Format(domain.DateFormat),
			Reason: occ.Reason,
		}
	}

	return &RecurringBookingResponse{
		SeriesID:        resp.SeriesID,
		DurationMinutes: resp.DurationMinutes,
		Created:         created,
		Skipped:         skipped,
	}
}
