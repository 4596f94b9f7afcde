package create_blocked_period

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/blocked"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "date must be YYYY-MM-DD"
)

type Handler struct {
	service BlockedService
	logger  Logger
}

func NewHandler(service BlockedService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocked-periods
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockedPeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-periods - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := handlers.ParseDate(req.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(date))
	if err != nil {
		if errors.Is(err, blocked.ErrInvalidInput) {
			h.logger.Warn("POST /admin/blocked-periods - Invalid data: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), blocked.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("POST /admin/blocked-periods - Failed to create: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/blocked-periods - Blocked period created: id=%s, date=%s", result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
