package update_availability

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/availability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgNoDays             = "at least one day is required"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.Days) == 0 {
		handlers.RespondBadRequest(w, msgNoDays)
		return
	}

	week, err := h.service.UpsertWeek(r.Context(), req.Days)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("PUT /admin/availability - Invalid data: %v", err)
			handlers.RespondBadRequest(w, strings.TrimPrefix(err.Error(), availability.ErrInvalidInput.Error()+": "))
			return
		}
		h.logger.Error("PUT /admin/availability - Failed to update weekly hours: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/availability - Weekly hours updated: days=%d", len(req.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}
