package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SalonBookingService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) CancelByCustomer(ctx context.Context, idOrToken string, customerID *string) (*models.BookingResponse, error) {
	args := m.Called(ctx, idOrToken, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func serve(svc *mockService, idOrToken, customerID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Customer)
	r.HandleFunc("/api/v1/bookings/{idOrToken}/cancel", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+idOrToken+"/cancel", nil)
	if customerID != "" {
		req.Header.Set(middleware.CustomerIDHeader, customerID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancelledByToken(t *testing.T) {
	svc := new(mockService)
	svc.On("CancelByCustomer", mock.Anything, "tok123", (*string)(nil)).
		Return(&models.BookingResponse{ID: "b-1", Status: "cancelled"}, nil)

	rec := serve(svc, "tok123", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	svc.AssertExpectations(t)
}

func TestHandle_PassesCustomerID(t *testing.T) {
	svc := new(mockService)
	svc.On("CancelByCustomer", mock.Anything, "tok123", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "cust-1"
	})).Return(&models.BookingResponse{ID: "b-1", Status: "cancelled"}, nil)

	rec := serve(svc, "tok123", "cust-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"inside notice window", bookings.ErrCancellationWindow, http.StatusUnprocessableEntity},
		{"already cancelled", bookings.ErrCannotChangeStatus, http.StatusConflict},
		{"not owner", bookings.ErrAccessDenied, http.StatusForbidden},
		{"unknown", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"storage", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("CancelByCustomer", mock.Anything, "tok123", mock.Anything).Return(nil, tt.err)

			rec := serve(svc, "tok123", "")

			require.Equal(t, tt.code, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}
