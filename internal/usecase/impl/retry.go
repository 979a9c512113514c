package impl

import (
	"context"
	"time"

	"wellness/config"
	domainerrors "wellness/internal/domain/errors"
	"wellness/internal/domain/repository"
	"wellness/internal/domain/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

const (
	defaultMaxRetries = 3

	conflictInitialInterval = 5 * time.Millisecond
	conflictMaxInterval     = 50 * time.Millisecond
)

func maxRetriesFrom(cfg *config.Config) int {
	if cfg != nil && cfg.Ledger != nil && cfg.Ledger.MaxRetries > 0 {
		return cfg.Ledger.MaxRetries
	}

	return defaultMaxRetries
}

// conflictBackOff spaces out re-reads after a lost version race; contenders are
// usually a handful of requests on the same membership.
func conflictBackOff(ctx context.Context, maxRetries int) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = conflictInitialInterval
	exp.MaxInterval = conflictMaxInterval
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxRetries)), ctx)
}

// retryOnConflict reruns attempt while it loses the membership version race.
// attempt must re-read the membership itself, normally inside a fresh transaction.
// After maxRetries extra attempts the conflict surfaces as ErrConcurrentUpdate.
func retryOnConflict(ctx context.Context, maxRetries int, metrics service.LedgerMetrics, attempt func() error) error {
	err := backoff.Retry(func() error {
		err := attempt()
		if !errors.Is(err, repository.ErrVersionConflict) {
			return backoff.Permanent(err)
		}

		if metrics != nil {
			metrics.ObserveVersionConflict()
		}

		return err
	}, conflictBackOff(ctx, maxRetries))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrVersionConflict):
		return domainerrors.ErrConcurrentUpdate.WithDetails(err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return errors.WithStack(err)
	default:
		return err
	}
}
