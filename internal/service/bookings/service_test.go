package bookings

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SalonBookingService/pkg/logger"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

var (
	salonID   = uuid.MustParse("3b0c1c8e-8a3a-4d7e-9c55-1f0c2e9b7a01")
	bookingID = uuid.MustParse("7d4e2a10-5c3b-4f6e-9a81-0b2c3d4e5f60")
	monday    = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, salon, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, salon, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetByCancelToken(ctx context.Context, salon uuid.UUID, token string) (*domain.Booking, error) {
	args := m.Called(ctx, salon, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, salon, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, salon, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) BookingCancelled(ctx context.Context, b *domain.Booking, actor string) {
	m.Called(ctx, b, actor)
}

type mockRecorder struct{ mock.Mock }

func (m *mockRecorder) RecordCancellation(actor string) {
	m.Called(actor)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	svc      *Service
	repo     *mockBookingRepo
	events   *mockEvents
	recorder *mockRecorder
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		repo:     new(mockBookingRepo),
		events:   new(mockEvents),
		recorder: new(mockRecorder),
	}
	f.svc = NewService(salonID, time.UTC, f.repo, f.events, f.recorder, logger.NewNop())
	f.svc.timeProvider = fixedTime{now: now}
	return f
}

func confirmedAt(start types.TimeString, customerID *string) *domain.Booking {
	return &domain.Booking{
		ID:            bookingID,
		SalonID:       salonID,
		CustomerID:    customerID,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		BookingDate:   monday,
		StartTime:     start,
		EndTime:       "11:00",
		Status:        domain.StatusConfirmed,
		CancelToken:   "tok",
	}
}

func cancelledCopy(b *domain.Booking) *domain.Booking {
	c := *b
	c.Status = domain.StatusCancelled
	return &c
}

func TestGet_AccessRules(t *testing.T) {
	owner := ptr.Ptr("cust-1")

	t.Run("token grants access", func(t *testing.T) {
		f := newFixture(monday)
		f.repo.On("GetByCancelToken", mock.Anything, salonID, "tok").Return(confirmedAt("10:00", owner), nil)

		resp, err := f.svc.Get(context.Background(), "tok", nil)
		require.NoError(t, err)
		assert.Equal(t, bookingID.String(), resp.ID)
	})

	t.Run("id requires owner", func(t *testing.T) {
		f := newFixture(monday)
		f.repo.On("GetByID", mock.Anything, salonID, bookingID).Return(confirmedAt("10:00", owner), nil)

		_, err := f.svc.Get(context.Background(), bookingID.String(), nil)
		assert.ErrorIs(t, err, ErrAccessDenied)

		_, err = f.svc.Get(context.Background(), bookingID.String(), ptr.Ptr("cust-2"))
		assert.ErrorIs(t, err, ErrAccessDenied)

		resp, err := f.svc.Get(context.Background(), bookingID.String(), owner)
		require.NoError(t, err)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(monday)
		f.repo.On("GetByCancelToken", mock.Anything, salonID, "nope").Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := f.svc.Get(context.Background(), "nope", nil)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancelByCustomer_NoticeWindow(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "two days ahead", now: monday.Add(-38 * time.Hour)},
		{name: "exactly 24 hours", now: monday.Add(-14 * time.Hour)},
		{name: "23 hours 59 minutes", now: monday.Add(-14*time.Hour + time.Minute), wantErr: ErrCancellationWindow},
		{name: "one hour ahead", now: monday.Add(9 * time.Hour), wantErr: ErrCancellationWindow},
		{name: "less than an hour ahead", now: monday.Add(9*time.Hour + 30*time.Minute)},
		{name: "already started", now: monday.Add(12 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.now)
			booking := confirmedAt("10:00", nil)
			f.repo.On("GetByCancelToken", mock.Anything, salonID, "tok").Return(booking, nil)

			if tt.wantErr == nil {
				f.repo.On("UpdateStatus", mock.Anything, salonID, bookingID, domain.StatusCancelled).
					Return(cancelledCopy(booking), nil)
				f.recorder.On("RecordCancellation", models.ActorCustomer).Once()
				f.events.On("BookingCancelled", mock.Anything, mock.Anything, models.ActorCustomer).Once()
			}

			resp, err := f.svc.CancelByCustomer(context.Background(), "tok", nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				f.events.AssertNotCalled(t, "BookingCancelled", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "cancelled", resp.Status)
			f.events.AssertExpectations(t)
			f.recorder.AssertExpectations(t)
		})
	}
}

func TestCancelByCustomer_AlreadyCancelled(t *testing.T) {
	f := newFixture(monday.Add(-72 * time.Hour))
	f.repo.On("GetByCancelToken", mock.Anything, salonID, "tok").
		Return(cancelledCopy(confirmedAt("10:00", nil)), nil)

	_, err := f.svc.CancelByCustomer(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, ErrCannotChangeStatus)
}

func TestCancelByCustomer_LostRace(t *testing.T) {
	f := newFixture(monday.Add(-72 * time.Hour))
	booking := confirmedAt("10:00", nil)
	f.repo.On("GetByCancelToken", mock.Anything, salonID, "tok").Return(booking, nil)
	f.repo.On("UpdateStatus", mock.Anything, salonID, bookingID, domain.StatusCancelled).
		Return(nil, bookingRepo.ErrStatusNotConfirmed)
	f.repo.On("GetByID", mock.Anything, salonID, bookingID).Return(cancelledCopy(booking), nil)

	_, err := f.svc.CancelByCustomer(context.Background(), "tok", nil)
	assert.ErrorIs(t, err, ErrCannotChangeStatus)
	f.events.AssertNotCalled(t, "BookingCancelled", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_Admin(t *testing.T) {
	t.Run("cancel inside the window", func(t *testing.T) {
		f := newFixture(monday.Add(9 * time.Hour))
		booking := confirmedAt("10:00", nil)
		f.repo.On("UpdateStatus", mock.Anything, salonID, bookingID, domain.StatusCancelled).
			Return(cancelledCopy(booking), nil)
		f.recorder.On("RecordCancellation", models.ActorAdmin).Once()
		f.events.On("BookingCancelled", mock.Anything, mock.Anything, models.ActorAdmin).Once()

		resp, err := f.svc.UpdateStatus(context.Background(), bookingID, "cancelled")
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		f.events.AssertExpectations(t)
	})

	t.Run("complete publishes nothing", func(t *testing.T) {
		f := newFixture(monday)
		completed := confirmedAt("10:00", nil)
		completed.Status = domain.StatusCompleted
		f.repo.On("UpdateStatus", mock.Anything, salonID, bookingID, domain.StatusCompleted).Return(completed, nil)

		resp, err := f.svc.UpdateStatus(context.Background(), bookingID, "completed")
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		f.events.AssertNotCalled(t, "BookingCancelled", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed is not a target", func(t *testing.T) {
		f := newFixture(monday)
		_, err := f.svc.UpdateStatus(context.Background(), bookingID, "confirmed")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(monday)
		f.repo.On("UpdateStatus", mock.Anything, salonID, bookingID, domain.StatusCompleted).
			Return(nil, bookingRepo.ErrStatusNotConfirmed)
		f.repo.On("GetByID", mock.Anything, salonID, bookingID).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := f.svc.UpdateStatus(context.Background(), bookingID, "completed")
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestListCustomerBookings_SplitsAtToday(t *testing.T) {
	f := newFixture(monday.Add(15 * time.Hour))

	today := confirmedAt("10:00", ptr.Ptr("cust-1"))
	yesterday := confirmedAt("10:00", ptr.Ptr("cust-1"))
	yesterday.BookingDate = monday.AddDate(0, 0, -1)
	tomorrowCancelled := cancelledCopy(confirmedAt("10:00", ptr.Ptr("cust-1")))
	tomorrowCancelled.BookingDate = monday.AddDate(0, 0, 1)

	f.repo.On("GetWithFilter", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.CustomerID != nil && *filter.CustomerID == "cust-1"
	})).Return([]*domain.Booking{tomorrowCancelled, today, yesterday}, nil)

	resp, err := f.svc.ListCustomerBookings(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Len(t, resp.Upcoming, 1)
	assert.Len(t, resp.Past, 2)
	assert.Equal(t, "2025-03-10", resp.Upcoming[0].Date)

	_, err = f.svc.ListCustomerBookings(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookings_Filters(t *testing.T) {
	f := newFixture(monday)
	f.repo.On("GetWithFilter", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.IsSingleDay() && filter.StartDate.Equal(monday) &&
			filter.Status != nil && *filter.Status == domain.StatusConfirmed
	})).Return([]*domain.Booking{confirmedAt("10:00", nil)}, nil)

	date := monday.Add(13 * time.Hour)
	resp, err := f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{
		Date:   &date,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListBookings_StorageFailure(t *testing.T) {
	f := newFixture(monday)
	f.repo.On("GetWithFilter", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := f.svc.ListBookings(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExport_WritesWorkbook(t *testing.T) {
	f := newFixture(monday)
	b := confirmedAt("10:00", nil)
	b.ServiceName = "Haircut"
	b.ServicePrice = 35
	withPhone := confirmedAt("12:00", nil)
	withPhone.ServiceName = "Colour"
	withPhone.CustomerPhone = ptr.Ptr("+49 30 555")
	f.repo.On("GetWithFilter", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.Ascending
	})).Return([]*domain.Booking{b, withPhone}, nil)

	var buf bytes.Buffer
	n, err := f.svc.Export(context.Background(), monday, monday.AddDate(0, 0, 6), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Phone", rows[0][7])
	assert.Equal(t, "2025-03-10", rows[1][0])
	assert.Equal(t, "Haircut", rows[1][3])
	assert.Equal(t, "", rows[1][7])
	assert.Equal(t, "confirmed", rows[1][8])
	assert.Equal(t, "+49 30 555", rows[2][7])
}

func TestExport_RangeValidation(t *testing.T) {
	f := newFixture(monday)

	_, err := f.svc.Export(context.Background(), monday, monday.AddDate(0, 0, -1), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Export(context.Background(), monday, monday.AddDate(2, 0, 0), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
