package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	mockSvc "wellness/internal/mocks/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryOnConflict_SucceedsAfterConflicts(t *testing.T) {
	metrics := mockSvc.NewMockLedgerMetrics(t)
	metrics.EXPECT().ObserveVersionConflict().Return().Times(2)

	calls := 0
	err := retryOnConflict(context.Background(), 3, metrics, func() error {
		calls++
		if calls <= 2 {
			return errors.Wrap(repository.ErrVersionConflict, "update membership")
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnConflict_GivesUp(t *testing.T) {
	calls := 0
	err := retryOnConflict(context.Background(), 3, nil, func() error {
		calls++

		return repository.ErrVersionConflict
	})

	require.ErrorIs(t, err, domainerrors.ErrConcurrentUpdate)
	assert.Equal(t, 4, calls)
}

func TestRetryOnConflict_OtherErrorsAreNotRetried(t *testing.T) {
	calls := 0
	err := retryOnConflict(context.Background(), 3, nil, func() error {
		calls++

		return domainerrors.ErrInsufficientBalance
	})

	require.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	assert.Equal(t, 1, calls)
}

func TestRetryOnConflict_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retryOnConflict(ctx, 3, nil, func() error {
		calls++

		return repository.ErrVersionConflict
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestConflictBackOff_IsBoundedAndShort(t *testing.T) {
	b := conflictBackOff(context.Background(), 3)

	for i := range 3 {
		next := b.NextBackOff()
		require.NotEqual(t, backoff.Stop, next, "retry %d", i)
		assert.Greater(t, next, time.Duration(0))
		assert.LessOrEqual(t, next, 75*time.Millisecond)
	}
	assert.Equal(t, backoff.Stop, b.NextBackOff())
}
