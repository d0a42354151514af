package create_group_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	createGroup "github.com/m04kA/Salon-BookingService/internal/usecase/create_group_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgSlotOccupied        = "выбранный временной слот уже занят"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов салона"
	msgCustomerNotFound    = "клиент не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgStaffNotFound       = "сотрудник не найден"
	msgInvalidGroupParams  = "некорректные параметры групповой записи"
)

type Handler struct {
	useCase CreateGroupBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateGroupBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/group
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/group - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings/group - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createGroup.ErrSlotOccupied):
			h.logger.Warn("POST /bookings/group - Slot occupied: date=%s, time=%s",
				req.ReservationDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotOccupied)

		case errors.Is(err, createGroup.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings/group - Outside operating hours: time=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createGroup.ErrCustomerNotFound):
			h.logger.Warn("POST /bookings/group - Customer not found: %v", err)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, createGroup.ErrServiceNotFound):
			h.logger.Warn("POST /bookings/group - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createGroup.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/group - Staff not found: staff_id=%v", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createGroup.ErrInvalidInput):
			h.logger.Warn("POST /bookings/group - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGroupParams)

		default:
			h.logger.Error("POST /bookings/group - Failed to create group booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/group - Group booking created: reservation_id=%d, party_size=%d",
		result.ID, result.PartySize)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
