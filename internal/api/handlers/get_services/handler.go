package get_services

import (
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
)

type Handler struct {
	service         CatalogService
	includeInactive bool
	logger          Logger
}

// NewHandler serves the public catalog; includeInactive is set for the admin listing.
func NewHandler(service CatalogService, includeInactive bool, logger Logger) *Handler {
	return &Handler{
		service:         service,
		includeInactive: includeInactive,
		logger:          logger,
	}
}

// Handle GET /api/v1/services, GET /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), h.includeInactive)
	if err != nil {
		h.logger.Error("GET %s - Failed to list services: error=%v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
