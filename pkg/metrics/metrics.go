package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects sweep progress into its own registry, so several sweeps
// in one process never collide.
type Recorder struct {
	registry *prometheus.Registry

	trials   prometheus.Counter
	trialBER prometheus.Histogram
	meanBER  *prometheus.GaugeVec
	duration prometheus.Gauge
}

// New builds a recorder whose series all carry run as a label.
func New(run string) *Recorder {
	registry := prometheus.NewRegistry()
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"run": run}, registry)

	r := &Recorder{
		registry: registry,
		trials: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goldlink_trials_total",
			Help: "Number of simulated link trials.",
		}),
		trialBER: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goldlink_trial_ber",
			Help:    "Bit error rate of single trials.",
			Buckets: prometheus.LinearBuckets(0, 0.05, 11),
		}),
		meanBER: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "goldlink_mean_ber",
			Help: "Mean bit error rate per SNR point.",
		}, []string{"snr_db"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "goldlink_sweep_duration_seconds",
			Help: "Wall time of the last sweep.",
		}),
	}
	reg.MustRegister(r.trials, r.trialBER, r.meanBER, r.duration)
	return r
}

func (r *Recorder) ObserveTrial(snrDb, ber float64) {
	r.trials.Inc()
	r.trialBER.Observe(ber)
}

func (r *Recorder) ObservePoint(snrDb, meanBER float64) {
	r.meanBER.WithLabelValues(strconv.FormatFloat(snrDb, 'f', -1, 64)).Set(meanBER)
}

func (r *Recorder) ObserveDuration(d time.Duration) {
	r.duration.Set(d.Seconds())
}

// Gatherer exposes the registry, e.g. for promhttp or tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values in the text exposition format, for
// node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, r.registry)
}
