package ga

// GenerationStats summarizes one evaluated generation of one run.
type GenerationStats struct {
	Run         int
	Generation  int
	MaxFitness  float64
	MeanFitness float64
	// TestFitness is only meaningful when Tested is true.
	TestFitness float64
	Tested      bool
}

// Reporter receives progress events from training. Runs may execute
// concurrently, so implementations must be safe for concurrent use.
type Reporter interface {
	GenerationEvaluated(stats GenerationStats)
	RunCompleted(result RunResult)
}

// ReporterSet fans events out to every registered reporter. A nil set is
// valid and drops events.
type ReporterSet struct {
	reporters []Reporter
}

// NewReporterSet creates a set holding reporters.
func NewReporterSet(reporters ...Reporter) *ReporterSet {
	return &ReporterSet{reporters: reporters}
}

// Add registers another reporter. Not safe to call while training.
func (s *ReporterSet) Add(r Reporter) {
	s.reporters = append(s.reporters, r)
}

// GenerationEvaluated forwards stats to every reporter.
func (s *ReporterSet) GenerationEvaluated(stats GenerationStats) {
	if s == nil {
		return
	}
	for _, r := range s.reporters {
		r.GenerationEvaluated(stats)
	}
}

// RunCompleted forwards result to every reporter.
func (s *ReporterSet) RunCompleted(result RunResult) {
	if s == nil {
		return
	}
	for _, r := range s.reporters {
		r.RunCompleted(result)
	}
}
