package family

import (
	"context"
	"slices"

	"prime-digit-families/internal/config"
	apperrors "prime-digit-families/internal/errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Longest scans every pattern and returns the longest family found. Among
// families of equal length the lexicographically smallest one wins, so the
// result does not depend on enumeration order.
func (s *Searcher) Longest(ctx context.Context) (Result, error) {
	total := s.patternTotal()
	ctx, span := tracer.Start(ctx, "family.Longest", trace.WithAttributes(attribute.Int("patterns", total)))
	defer span.End()
	s.logger.Info("scanning patterns", "mode", string(config.ModeLongest), "patterns", total)

	var best Result
	patterns := 0

	for p := range s.newEnumerator().All() {
		patterns++

		// ties still need evaluating for the tie-break, so only cases that
		// cannot reach the current best length are abandoned
		reachable := func(primesFound, tried int) bool {
			return primesFound+config.AlphabetSize-tried >= len(best.Family)
		}
		complete := func(c caseFamily) bool {
			if longer(c.members, best.Family) {
				best = Result{
					Family:  slices.Clone(c.members),
					Pattern: p,
					CaseKey: c.key,
					Base:    c.base,
				}
			}
			return false
		}

		stats, err := s.scanPattern(ctx, p, reachable, complete)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Result{}, err
		}
		s.recorder.ObservePattern(stats)
		s.logger.Debug("pattern scanned", "pattern", p.String(), "cases", stats.CasesEvaluated, "skipped", stats.CasesSkipped, "best", len(best.Family))
	}

	if len(best.Family) == 0 {
		err := apperrors.NewNotFoundError(0, patterns)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	span.SetAttributes(attribute.Int("family.size", len(best.Family)), attribute.String("pattern", best.Pattern.String()))
	s.logger.Info("longest family found", "pattern", best.Pattern.String(), "case", best.CaseKey, "family", best.Family)
	return best, nil
}

// longer reports whether candidate beats current: more members first, then
// the lexicographically smaller sequence
func longer(candidate, current []uint64) bool {
	if len(candidate) != len(current) {
		return len(candidate) > len(current)
	}
	return len(candidate) > 0 && slices.Compare(candidate, current) < 0
}
