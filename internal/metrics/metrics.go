package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScanStats summarises one pattern's pass over the prime set
type ScanStats struct {
	CasesEvaluated      int
	CasesSkipped        int
	CandidatesPrime     int
	CandidatesComposite int
	CasesPruned         int
}

// Add accumulates other into s
func (s *ScanStats) Add(other ScanStats) {
	s.CasesEvaluated += other.CasesEvaluated
	s.CasesSkipped += other.CasesSkipped
	s.CandidatesPrime += other.CandidatesPrime
	s.CandidatesComposite += other.CandidatesComposite
	s.CasesPruned += other.CasesPruned
}

// Recorder receives search statistics. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveSieve(primes int, duration time.Duration)
	ObservePattern(stats ScanStats)
}

// NoOpRecorder discards everything
type NoOpRecorder struct{}

func (NoOpRecorder) ObserveSieve(int, time.Duration) {}

func (NoOpRecorder) ObservePattern(ScanStats) {}

// PrometheusRecorder records search statistics as prometheus metrics
type PrometheusRecorder struct {
	patterns      prometheus.Counter
	cases         *prometheus.CounterVec
	candidates    *prometheus.CounterVec
	pruned        prometheus.Counter
	sievePrimes   prometheus.Gauge
	sieveDuration prometheus.Histogram
}

// NewPrometheusRecorder registers the search metrics on reg
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		patterns: factory.NewCounter(prometheus.CounterOpts{
			Name: "familysearch_patterns_scanned_total",
			Help: "Total patterns whose prime scan ran to completion",
		}),
		cases: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "familysearch_cases_total",
			Help: "Total cases seen during scans by result",
		}, []string{"result"}),
		candidates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "familysearch_candidates_total",
			Help: "Total substitution candidates tested by outcome",
		}, []string{"outcome"}),
		pruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "familysearch_cases_pruned_total",
			Help: "Total cases abandoned because the target size became unreachable",
		}),
		sievePrimes: factory.NewGauge(prometheus.GaugeOpts{
			Name: "familysearch_sieve_primes",
			Help: "Number of primes in the sieved range",
		}),
		sieveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "familysearch_sieve_duration_seconds",
			Help:    "Time spent building the prime set",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
		}),
	}
}

func (r *PrometheusRecorder) ObserveSieve(primes int, duration time.Duration) {
	r.sievePrimes.Set(float64(primes))
	r.sieveDuration.Observe(duration.Seconds())
}

func (r *PrometheusRecorder) ObservePattern(stats ScanStats) {
	r.patterns.Inc()
	r.cases.WithLabelValues("evaluated").Add(float64(stats.CasesEvaluated))
	r.cases.WithLabelValues("skipped").Add(float64(stats.CasesSkipped))
	r.candidates.WithLabelValues("prime").Add(float64(stats.CandidatesPrime))
	r.candidates.WithLabelValues("composite").Add(float64(stats.CandidatesComposite))
	r.pruned.Add(float64(stats.CasesPruned))
}
