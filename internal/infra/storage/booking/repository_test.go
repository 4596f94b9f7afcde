package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SalonBookingService/pkg/txmanager"
)

func TestIsConflict(t *testing.T) {
	assert.True(t, IsConflict(&pq.Error{Code: "23P01", Constraint: "excl_bookings_no_overlap"}))
	assert.True(t, IsConflict(fmt.Errorf("insert: %w", &pq.Error{Code: "23P01"})))
	assert.False(t, IsConflict(&pq.Error{Code: "23505"}))
	assert.False(t, IsConflict(&pq.Error{Code: "40001"}))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.False(t, IsConflict(nil))
}

func TestInsertError(t *testing.T) {
	t.Run("overlap becomes a slot conflict", func(t *testing.T) {
		err := insertError(&pq.Error{Code: "23P01"})

		assert.Same(t, ErrSlotConflict, err)
		assert.False(t, txmanager.IsRetryable(err))
	})

	t.Run("serialization failure stays visible to the tx manager", func(t *testing.T) {
		err := insertError(&pq.Error{Code: "40001"})

		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NotErrorIs(t, err, ErrSlotConflict)
		assert.True(t, txmanager.IsRetryable(err))
	})

	t.Run("other failures are exec errors", func(t *testing.T) {
		err := insertError(&pq.Error{Code: "22001"})

		assert.ErrorIs(t, err, ErrExecQuery)
		assert.False(t, txmanager.IsRetryable(err))
	})
}
