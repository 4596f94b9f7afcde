package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SalonBookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingParams   = "date and serviceId are required"
	msgInvalidParams   = "serviceId must be a uuid and date YYYY-MM-DD"
	msgServiceNotFound = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceIDStr := r.URL.Query().Get("serviceId")
	dateStr := r.URL.Query().Get("date")
	if serviceIDStr == "" || dateStr == "" {
		h.logger.Warn("GET /availability/slots - Missing parameters: service_id=%q, date=%q", serviceIDStr, dateStr)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /availability/slots - Service not found: service_id=%s", serviceIDStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceIDStr, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/slots - Slots retrieved: service_id=%s, date=%s, slots_count=%d",
		serviceIDStr, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
