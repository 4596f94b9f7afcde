package get_blocked_periods

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/service/blocked"
	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
)

const msgInvalidRange = "from and to must be YYYY-MM-DD, from <= to"

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

// Handle GET /api/v1/admin/blocked-periods
// Query params: from, to (both optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, errFrom := handlers.ParseOptionalDate(query.Get("from"))
	to, errTo := handlers.ParseOptionalDate(query.Get("to"))
	if errFrom != nil || errTo != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBlockedPeriodsRequest{From: from, To: to})
	if err != nil {
		if errors.Is(err, blocked.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/blocked-periods - Failed to list: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
