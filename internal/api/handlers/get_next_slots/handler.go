package get_next_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	getNextSlots "github.com/m04kA/SalonBookingService/internal/usecase/get_next_slots"
)

const (
	msgInvalidServiceID = "serviceId must be a uuid"
	msgInvalidLimit     = "limit must be a non-negative integer"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetNextSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetNextSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/next
// Query params: serviceId (required), limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(r.URL.Query().Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /availability/next - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	limit, err := handlers.ParseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		h.logger.Warn("GET /availability/next - Invalid limit: %q", r.URL.Query().Get("limit"))
		handlers.RespondBadRequest(w, msgInvalidLimit)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getNextSlots.Request{ServiceID: serviceID, Limit: limit})
	if err != nil {
		switch {
		case errors.Is(err, getNextSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability/next - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getNextSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLimit)

		default:
			h.logger.Error("GET /availability/next - Failed to get slots: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/next - Slots retrieved: service_id=%s, slots_count=%d", serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
