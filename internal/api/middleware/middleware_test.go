package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/logger"
)

func TestAdminAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	h := AdminAuth("owner", string(hash), logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		user, pass string
		noAuth     bool
		want       int
	}{
		{name: "valid", user: "owner", pass: "s3cret", want: http.StatusOK},
		{name: "wrong password", user: "owner", pass: "nope", want: http.StatusForbidden},
		{name: "wrong user", user: "guest", pass: "s3cret", want: http.StatusForbidden},
		{name: "no credentials", noAuth: true, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings", nil)
			if !tt.noAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.noAuth {
				assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestCustomer(t *testing.T) {
	var seen *string
	h := Customer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CustomerIDPtr(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CustomerIDHeader, " cust-42 ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, seen)
	assert.Equal(t, "cust-42", *seen)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen)
}

func TestCustomer_IDLength(t *testing.T) {
	called := false
	h := Customer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(id string) int {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(CustomerIDHeader, id)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(strings.Repeat("c", domain.MaxCustomerIDLength)))
	assert.True(t, called)

	assert.Equal(t, http.StatusBadRequest, serve(strings.Repeat("c", domain.MaxCustomerIDLength+1)))
	assert.False(t, called)

	assert.Equal(t, http.StatusBadRequest, serve(strings.Repeat("c", 100)))
	assert.Equal(t, 64, domain.MaxCustomerIDLength)
}

func TestRequireCustomer(t *testing.T) {
	h := Customer(RequireCustomer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CustomerIDHeader, "cust-42")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
