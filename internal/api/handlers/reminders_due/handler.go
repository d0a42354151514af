package reminders_due

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/service/reminders"
)

const (
	defaultLookaheadHours = 24

	msgInvalidLookahead = "некорректное значение lookaheadHours"
)

type Handler struct {
	service RemindersService
	logger  Logger
}

func NewHandler(service RemindersService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reminders/due
// Query params: lookaheadHours (optional, default 24)
// Выборка идемпотентна и ничего не помечает отправленным
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lookaheadHours := defaultLookaheadHours
	if lookaheadStr := r.URL.Query().Get("lookaheadHours"); lookaheadStr != "" {
		parsed, err := strconv.Atoi(lookaheadStr)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /reminders/due - Invalid lookaheadHours: %q", lookaheadStr)
			handlers.RespondBadRequest(w, msgInvalidLookahead)
			return
		}
		lookaheadHours = parsed
	}

	result, err := h.service.DueForReminder(r.Context(), lookaheadHours)
	if err != nil {
		switch {
		case errors.Is(err, reminders.ErrInvalidInput):
			h.logger.Warn("GET /reminders/due - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLookahead)

		default:
			h.logger.Error("GET /reminders/due - Failed to select due reminders: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reminders/due - %d reservations due within %d hours",
		len(result.Reservations), lookaheadHours)
	handlers.RespondJSON(w, http.StatusOK, result)
}
