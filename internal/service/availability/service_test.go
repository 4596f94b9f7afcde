package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/internal/service/availability/models"
	"github.com/m04kA/SalonBookingService/pkg/logger"
)

var salonID = uuid.MustParse("3b0c1c8e-8a3a-4d7e-9c55-1f0c2e9b7a01")

type mockRepo struct{ mock.Mock }

func (m *mockRepo) ListBySalon(ctx context.Context, salon uuid.UUID) ([]*domain.WeeklyAvailability, error) {
	args := m.Called(ctx, salon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeeklyAvailability), args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, day *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyAvailability), args.Error(1)
}

// fakeTx runs fn inline and remembers whether it would have committed.
type fakeTx struct {
	calls     int
	committed bool
}

func (tx *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	err := fn(ctx)
	tx.committed = err == nil
	return err
}

func TestUpsert_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpsertDayRequest
	}{
		{"day below range", models.UpsertDayRequest{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}},
		{"day above range", models.UpsertDayRequest{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", models.UpsertDayRequest{DayOfWeek: 1, StartTime: "9:00", EndTime: "17:00"}},
		{"bad end", models.UpsertDayRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "24:00"}},
		{"start equals end", models.UpsertDayRequest{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
		{"start after end", models.UpsertDayRequest{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewService(salonID, repo, &fakeTx{}, logger.NewNop())

			_, err := svc.Upsert(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestUpsert_Saves(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(salonID, repo, &fakeTx{}, logger.NewNop())

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(d *domain.WeeklyAvailability) bool {
		return d.SalonID == salonID && d.DayOfWeek == 2 && d.StartTime == "09:00" && d.IsAvailable
	})).Return(&domain.WeeklyAvailability{
		ID: uuid.New(), DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
	}, nil)

	resp, err := svc.Upsert(context.Background(), &models.UpsertDayRequest{
		DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "17:00", resp.EndTime)
	repo.AssertExpectations(t)
}

func TestUpsertWeek_RejectsBeforeWriting(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(salonID, repo, &fakeTx{}, logger.NewNop())

	_, err := svc.UpsertWeek(context.Background(), []models.UpsertDayRequest{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestList_StorageFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(salonID, repo, &fakeTx{}, logger.NewNop())
	repo.On("ListBySalon", mock.Anything, salonID).Return(nil, errors.New("boom"))

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpsertWeek_OneTransaction(t *testing.T) {
	repo := new(mockRepo)
	tx := &fakeTx{}
	svc := NewService(salonID, repo, tx, logger.NewNop())

	repo.On("Upsert", mock.Anything, mock.Anything).Return(&domain.WeeklyAvailability{ID: uuid.New()}, nil).Twice()
	repo.On("ListBySalon", mock.Anything, salonID).Return([]*domain.WeeklyAvailability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
	}, nil)

	resp, err := svc.UpsertWeek(context.Background(), []models.UpsertDayRequest{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 2)
	assert.Equal(t, 1, tx.calls)
	assert.True(t, tx.committed)
	repo.AssertExpectations(t)
}

func TestUpsertWeek_FailureRollsBack(t *testing.T) {
	repo := new(mockRepo)
	tx := &fakeTx{}
	svc := NewService(salonID, repo, tx, logger.NewNop())

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(d *domain.WeeklyAvailability) bool { return d.DayOfWeek == 1 })).
		Return(&domain.WeeklyAvailability{ID: uuid.New(), DayOfWeek: 1}, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(d *domain.WeeklyAvailability) bool { return d.DayOfWeek == 2 })).
		Return(nil, errors.New("connection lost"))

	_, err := svc.UpsertWeek(context.Background(), []models.UpsertDayRequest{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, tx.calls)
	assert.False(t, tx.committed)
	repo.AssertNumberOfCalls(t, "Upsert", 2)
	repo.AssertNotCalled(t, "ListBySalon", mock.Anything, mock.Anything)
}
