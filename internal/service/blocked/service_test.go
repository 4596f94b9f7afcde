package blocked

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SalonBookingService/internal/domain"
	blockedRepo "github.com/m04kA/SalonBookingService/internal/infra/storage/blocked"
	"github.com/m04kA/SalonBookingService/internal/service/blocked/models"
	"github.com/m04kA/SalonBookingService/pkg/logger"
	"github.com/m04kA/SalonBookingService/pkg/ptr"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

var (
	salonID = uuid.MustParse("3b0c1c8e-8a3a-4d7e-9c55-1f0c2e9b7a01")
	date    = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, p *domain.BlockedPeriod) (*domain.BlockedPeriod, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlockedPeriod), args.Error(1)
}

func (m *mockRepo) ListByRange(ctx context.Context, salon uuid.UUID, from, to *time.Time) ([]*domain.BlockedPeriod, error) {
	args := m.Called(ctx, salon, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BlockedPeriod), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, salon, id uuid.UUID) error {
	return m.Called(ctx, salon, id).Error(0)
}

func ts(s string) *types.TimeString {
	return ptr.Ptr(types.TimeString(s))
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateBlockedPeriodRequest
		wantErr bool
	}{
		{name: "whole day", req: models.CreateBlockedPeriodRequest{Date: date}},
		{name: "range", req: models.CreateBlockedPeriodRequest{Date: date, StartTime: ts("12:00"), EndTime: ts("13:00")}},
		{name: "missing date", req: models.CreateBlockedPeriodRequest{}, wantErr: true},
		{name: "only start", req: models.CreateBlockedPeriodRequest{Date: date, StartTime: ts("12:00")}, wantErr: true},
		{name: "only end", req: models.CreateBlockedPeriodRequest{Date: date, EndTime: ts("12:00")}, wantErr: true},
		{name: "reversed", req: models.CreateBlockedPeriodRequest{Date: date, StartTime: ts("13:00"), EndTime: ts("12:00")}, wantErr: true},
		{name: "bad format", req: models.CreateBlockedPeriodRequest{Date: date, StartTime: ts("12"), EndTime: ts("13:00")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			svc := NewService(salonID, repo, logger.NewNop())
			repo.On("Create", mock.Anything, mock.Anything).Return(&domain.BlockedPeriod{
				ID: uuid.New(), Date: date, StartTime: tt.req.StartTime, EndTime: tt.req.EndTime,
			}, nil)

			resp, err := svc.Create(context.Background(), &tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "2025-03-10", resp.Date)
			assert.Equal(t, tt.req.StartTime == nil, resp.WholeDay)
		})
	}
}

func TestList_Range(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(salonID, repo, logger.NewNop())

	to := date.AddDate(0, 0, -1)
	_, err := svc.List(context.Background(), &models.ListBlockedPeriodsRequest{From: &date, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.On("ListByRange", mock.Anything, salonID, (*time.Time)(nil), (*time.Time)(nil)).
		Return([]*domain.BlockedPeriod{{ID: uuid.New(), Date: date}}, nil)
	resp, err := svc.List(context.Background(), &models.ListBlockedPeriodsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.BlockedPeriods, 1)
	assert.True(t, resp.BlockedPeriods[0].WholeDay)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(salonID, repo, logger.NewNop())
	id := uuid.New()
	repo.On("Delete", mock.Anything, salonID, id).Return(blockedRepo.ErrBlockedPeriodNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrBlockedPeriodNotFound)
}
