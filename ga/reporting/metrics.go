package reporting

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baldhumanity/ga-go/ga"
)

// MetricsReporter exports training progress as Prometheus metrics, labeled
// by run index.
type MetricsReporter struct {
	maxFitness  *prometheus.GaugeVec
	meanFitness *prometheus.GaugeVec
	testFitness *prometheus.GaugeVec
	generations *prometheus.CounterVec
	bestFitness *prometheus.GaugeVec
}

// NewMetricsReporter creates the metrics and registers them with reg.
func NewMetricsReporter(reg prometheus.Registerer) (*MetricsReporter, error) {
	r := &MetricsReporter{
		maxFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ga",
			Name:      "generation_max_fitness",
			Help:      "Highest training fitness in the latest evaluated generation.",
		}, []string{"run"}),
		meanFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ga",
			Name:      "generation_mean_fitness",
			Help:      "Mean training fitness in the latest evaluated generation.",
		}, []string{"run"}),
		testFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ga",
			Name:      "test_fitness",
			Help:      "Held-out accuracy of the best model at the latest test checkpoint.",
		}, []string{"run"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ga",
			Name:      "generations_total",
			Help:      "Generations evaluated.",
		}, []string{"run"}),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ga",
			Name:      "run_best_fitness",
			Help:      "Training fitness of the model selected at the end of a run.",
		}, []string{"run"}),
	}
	for _, c := range []prometheus.Collector{r.maxFitness, r.meanFitness, r.testFitness, r.generations, r.bestFitness} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *MetricsReporter) GenerationEvaluated(stats ga.GenerationStats) {
	run := strconv.Itoa(stats.Run)
	r.maxFitness.WithLabelValues(run).Set(stats.MaxFitness)
	r.meanFitness.WithLabelValues(run).Set(stats.MeanFitness)
	r.generations.WithLabelValues(run).Inc()
	if stats.Tested {
		r.testFitness.WithLabelValues(run).Set(stats.TestFitness)
	}
}

func (r *MetricsReporter) RunCompleted(result ga.RunResult) {
	r.bestFitness.WithLabelValues(strconv.Itoa(result.Run)).Set(result.BestFitness)
}
