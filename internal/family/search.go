// Package family searches a prime range for digit replacement families:
// primes that stay prime when the same digit is written into a fixed set of
// positions.
package family

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"prime-digit-families/internal/config"
	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/log"
	"prime-digit-families/internal/metrics"
	"prime-digit-families/internal/pattern"
	"prime-digit-families/internal/primes"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("prime-digit-families/internal/family")

// ctxCheckInterval is how many primes a scan visits between cancellation checks
const ctxCheckInterval = 4096

// Result is a family together with the pattern and case that produced it
type Result struct {
	// Family holds the primes in ascending order of the substituted digit
	Family  []uint64
	Pattern pattern.Pattern
	CaseKey string
	// Base is the first prime of the range that opened this case
	Base uint64
}

// Searcher looks for prime families over one sieved range. The prime set is
// built once by NewSearcher and shared read-only by every search it runs.
type Searcher struct {
	cfg      config.Config
	primes   *primes.Set[uint64]
	logger   log.Logger
	recorder metrics.Recorder
	runID    string
}

// Option customises a Searcher
type Option func(*Searcher)

// WithLogger sets the logger a Searcher reports progress to
func WithLogger(l log.Logger) Option {
	return func(s *Searcher) {
		s.logger = l
	}
}

// WithRecorder sets the recorder that receives scan statistics
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Searcher) {
		s.recorder = r
	}
}

// NewSearcher validates cfg and sieves its range
func NewSearcher(ctx context.Context, cfg config.Config, opts ...Option) (*Searcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Searcher{
		cfg:      cfg,
		logger:   log.NewNoOpLogger(),
		recorder: metrics.NoOpRecorder{},
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("run_id", s.runID)

	_, span := tracer.Start(ctx, "family.BuildPrimeSet", trace.WithAttributes(
		attribute.String("range.min", strconv.FormatUint(cfg.Min, 10)),
		attribute.String("range.max", strconv.FormatUint(cfg.Max, 10)),
	))
	defer span.End()

	start := time.Now()
	set, err := primes.Build(cfg.Min, cfg.Max)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to build prime set: %w", err)
	}
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("primes", set.Len()))
	s.recorder.ObserveSieve(set.Len(), elapsed)
	s.logger.Info("prime set built", "min", cfg.Min, "max", cfg.Max, "primes", set.Len(), "duration", elapsed.String())

	s.primes = set
	return s, nil
}

// RunID identifies this searcher in logs
func (s *Searcher) RunID() string {
	return s.runID
}

// Primes returns the sieved prime set
func (s *Searcher) Primes() *primes.Set[uint64] {
	return s.primes
}

// Run executes the search selected by the configured mode
func (s *Searcher) Run(ctx context.Context) (Result, error) {
	if s.cfg.Mode == config.ModeLongest {
		return s.Longest(ctx)
	}
	return s.Find(ctx)
}

// Find returns the first family of exactly TargetFamilySize primes. With
// more than one worker configured, patterns are scanned in parallel and the
// first family found by any worker wins.
func (s *Searcher) Find(ctx context.Context) (Result, error) {
	total := s.patternTotal()
	ctx, span := tracer.Start(ctx, "family.Find", trace.WithAttributes(
		attribute.Int("target", s.cfg.TargetFamilySize),
		attribute.Int("workers", s.cfg.Workers),
		attribute.Int("patterns", total),
	))
	defer span.End()
	s.logger.Info("scanning patterns", "mode", string(config.ModeExact), "patterns", total)

	var (
		result Result
		err    error
	)
	if s.cfg.Workers > 1 {
		result, err = s.findParallel(ctx)
	} else {
		result, err = s.findSequential(ctx)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	span.SetAttributes(attribute.String("pattern", result.Pattern.String()))
	s.logger.Info("family found", "pattern", result.Pattern.String(), "case", result.CaseKey, "family", result.Family)
	return result, nil
}

func (s *Searcher) findSequential(ctx context.Context) (Result, error) {
	patterns := 0
	for p := range s.newEnumerator().All() {
		patterns++
		result, found, err := s.findInPattern(ctx, p)
		if err != nil {
			return Result{}, err
		}
		if found {
			return result, nil
		}
	}
	return Result{}, apperrors.NewNotFoundError(s.cfg.TargetFamilySize, patterns)
}

// findInPattern scans every case of p and stops at the first family whose
// size equals the target exactly
func (s *Searcher) findInPattern(ctx context.Context, p pattern.Pattern) (Result, bool, error) {
	target := s.cfg.TargetFamilySize

	var (
		result Result
		found  bool
	)

	// Digits are tried in ascending order and each adds at most one prime,
	// so once tried-found misses exceed AlphabetSize-target the target is
	// out of reach.
	reachable := func(primesFound, tried int) bool {
		return tried-primesFound+target <= config.AlphabetSize
	}
	complete := func(c caseFamily) bool {
		if len(c.members) != target {
			return false
		}
		result = Result{
			Family:  slices.Clone(c.members),
			Pattern: p,
			CaseKey: c.key,
			Base:    c.base,
		}
		found = true
		return true
	}

	stats, err := s.scanPattern(ctx, p, reachable, complete)
	if err != nil {
		return Result{}, false, err
	}
	s.recorder.ObservePattern(stats)

	s.logger.Debug("pattern scanned", "pattern", p.String(), "cases", stats.CasesEvaluated, "skipped", stats.CasesSkipped, "found", found)
	return result, found, nil
}

// caseFamily is the outcome of evaluating one case. members is reused
// between cases and must be copied to be kept.
type caseFamily struct {
	base    uint64
	key     string
	members []uint64
}

// scanPattern walks the primes in ascending order and evaluates each case of
// p once. reachable is consulted before every digit and abandons the case
// when it returns false. complete receives every fully evaluated case and
// ends the scan by returning true.
func (s *Searcher) scanPattern(
	ctx context.Context,
	p pattern.Pattern,
	reachable func(primesFound, tried int) bool,
	complete func(caseFamily) bool,
) (metrics.ScanStats, error) {
	var stats metrics.ScanStats

	seen := make(map[string]struct{})
	digits := make([]uint8, s.cfg.DigitWidth)
	members := make([]uint64, 0, config.AlphabetSize)
	var keyBuf []byte

	visited := 0
	for prime := range s.primes.All() {
		visited++
		if visited%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		if err := decomposeInto(prime, digits); err != nil {
			return stats, err
		}

		keyBuf = appendCaseKey(keyBuf[:0], digits, p)
		if _, ok := seen[string(keyBuf)]; ok {
			stats.CasesSkipped++
			continue
		}
		key := string(keyBuf)
		seen[key] = struct{}{}
		stats.CasesEvaluated++

		members = members[:0]
		pruned := false
		for d := uint8(0); d < config.AlphabetSize; d++ {
			if !reachable(len(members), int(d)) {
				pruned = true
				break
			}
			candidate, err := Substitute(digits, d, p)
			if err != nil {
				return stats, err
			}
			if s.primes.Contains(candidate) {
				members = append(members, candidate)
				stats.CandidatesPrime++
			} else {
				stats.CandidatesComposite++
			}
		}
		if pruned {
			stats.CasesPruned++
			continue
		}

		if complete(caseFamily{base: prime, key: key, members: members}) {
			return stats, nil
		}
	}

	return stats, ctx.Err()
}

// patternTotal is the number of patterns the enumerator will yield
func (s *Searcher) patternTotal() int {
	return pattern.Count(s.cfg.MinPatternLen, s.cfg.MaxPatternLen, s.cfg.DigitWidth)
}

func (s *Searcher) newEnumerator() *pattern.Enumerator {
	return pattern.NewEnumerator(s.cfg.MinPatternLen, s.cfg.MaxPatternLen, s.cfg.DigitWidth)
}
