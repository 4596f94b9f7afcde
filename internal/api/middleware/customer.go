package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SalonBookingService/internal/domain"
)

// CustomerIDHeader is set by the upstream auth gateway for signed-in customers.
const CustomerIDHeader = "X-Customer-ID"

type customerKey struct{}

// Customer stores the optional customer id in the request context.
func Customer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(CustomerIDHeader))
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		if len(id) > domain.MaxCustomerIDLength {
			handlers.RespondBadRequest(w, "invalid "+CustomerIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCustomerID(r.Context(), id)))
	})
}

// RequireCustomer rejects requests without a customer id. Must run after Customer.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetCustomerID(r.Context()); !ok {
			handlers.RespondUnauthorized(w, "missing "+CustomerIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithCustomerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, customerKey{}, id)
}

func GetCustomerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerKey{}).(string)
	return id, ok && id != ""
}

// CustomerIDPtr returns the customer id or nil.
func CustomerIDPtr(ctx context.Context) *string {
	if id, ok := GetCustomerID(ctx); ok {
		return &id
	}
	return nil
}
