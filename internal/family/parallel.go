package family

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/pattern"

	"golang.org/x/sync/errgroup"
)

// findParallel fans patterns out to a pool of workers. Each worker keeps its
// own case set and family buffer; the prime set is only read. The first
// family reported wins and cancels the remaining work.
func (s *Searcher) findParallel(ctx context.Context) (Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workerPoolSize := s.cfg.Workers
	patterns := make(chan pattern.Pattern, workerPoolSize)

	var (
		once    sync.Once
		found   atomic.Bool
		result  Result
		scanned atomic.Int64
	)

	eg, egCtx := errgroup.WithContext(ctx)

	// Producer feeds patterns until the enumeration ends or a worker wins
	eg.Go(func() error {
		defer close(patterns)
		for p := range s.newEnumerator().All() {
			select {
			case patterns <- p:
			case <-egCtx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 1; w <= workerPoolSize; w++ {
		eg.Go(func() error {
			processed := 0
			defer func() {
				s.logger.Debug("worker finished", "worker", w, "patterns", processed)
			}()

			for p := range patterns {
				res, ok, err := s.findInPattern(egCtx, p)
				if err != nil {
					if found.Load() && errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				processed++
				scanned.Add(1)

				if ok {
					once.Do(func() {
						result = res
						found.Store(true)
						cancel()
					})
					return nil
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	if found.Load() {
		return result, nil
	}
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return Result{}, apperrors.NewNotFoundError(s.cfg.TargetFamilySize, int(scanned.Load()))
}
