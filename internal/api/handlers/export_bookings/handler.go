package export_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/bookings"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	msgInvalidRange = "from and to are required as YYYY-MM-DD, from <= to"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/export?from=&to=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, errFrom := handlers.ParseDate(query.Get("from"))
	to, errTo := handlers.ParseDate(query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid range: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	// Buffered so a failure can still become a JSON error.
	var buf bytes.Buffer
	count, err := h.service.Export(r.Context(), from, to, &buf)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/bookings/export - Failed to export: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("bookings_%s_%s.xlsx", from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /admin/bookings/export - Client went away: %v", err)
		return
	}

	h.logger.Info("GET /admin/bookings/export - Exported %d bookings", count)
}
