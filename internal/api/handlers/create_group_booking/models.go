package create_group_booking

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	createGroup "github.com/m04kA/Salon-BookingService/internal/usecase/create_group_booking"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// CreateGroupBookingRequest HTTP request model
type CreateGroupBookingRequest struct {
	CustomerIDs     []int64 `json:"customerIds"` // первый клиент - владелец записи
	ServiceID       int64   `json:"serviceId"`
	StaffID         *int64  `json:"staffId,omitempty"`
	ReservationDate string  `json:"reservationDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`       // "10:00"
	Notes           *string `json:"notes,omitempty"`
}

// GroupBookingResponse HTTP response model
type GroupBookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"` // владелец записи
	ServiceID       int64   `json:"serviceId"`
	StaffID         *int64  `json:"staffId,omitempty"`
	ReservationDate string  `json:"reservationDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PartySize       int     `json:"partySize"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateGroupBookingRequest) ToUseCaseRequest() (*createGroup.Request, error) {
	reservationDate, err := time.Parse(domain.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createGroup.Request{
		CustomerIDs: r.CustomerIDs,
		ServiceID:   r.ServiceID,
		StaffID:     r.StaffID,
		Date:        reservationDate,
		StartTime:   startTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createGroup.Response) *GroupBookingResponse {
	return &GroupBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		ReservationDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PartySize:       resp.PartySize,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
