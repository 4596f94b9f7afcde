package export_bookings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SalonBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Export(ctx context.Context, from, to time.Time, w io.Writer) (int, error) {
	args := m.Called(ctx, from, to, w)
	if payload, ok := args.Get(0).(string); ok && payload != "" {
		_, _ = io.WriteString(w, payload)
	}
	return args.Int(1), args.Error(2)
}

func serve(svc *mockService, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/export"+query, nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_Workbook(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	svc := new(mockService)
	svc.On("Export", mock.Anything, from, to, mock.Anything).Return("PK-fake-xlsx", 3, nil)

	rec := serve(svc, "?from=2025-03-01&to=2025-03-31")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="bookings_2025-03-01_2025-03-31.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, fmt.Sprint(len("PK-fake-xlsx")), rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK-fake-xlsx", rec.Body.String())
}

func TestHandle_InvalidRange(t *testing.T) {
	svc := new(mockService)

	assert.Equal(t, http.StatusBadRequest, serve(svc, "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "?from=2025-03-01").Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "?from=03/01/2025&to=2025-03-31").Code)
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	svc.On("Export", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", 0, bookings.ErrInvalidInput)
	rec := serve(svc, "?from=2025-03-31&to=2025-03-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}
