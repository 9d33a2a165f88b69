package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"canteen/internal/models"
)

var (
	searchTermDesc = prometheus.NewDesc(
		"canteen_search_term_searches_total",
		"Total searches logged per canonical search term",
		[]string{"term"},
		nil,
	)

	searchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "canteen_searches_total",
			Help: "Searches handled by outcome",
		},
		[]string{"outcome"},
	)

	storeRecoveries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "canteen_search_log_recoveries_total",
		Help: "Times a corrupted search log was discarded and reinitialized",
	})

	storeTerms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "canteen_search_terms",
		Help: "Distinct terms in the search log at the last integrity check",
	})
)

// OutcomeFailed labels searches whose write-back failed.
const OutcomeFailed = "failed"

// RecordLister is the part of the search log the collector reads on scrape.
type RecordLister interface {
	LoadAll(ctx context.Context) ([]models.TermRecord, error)
}

// TermCollector is a custom Prometheus collector that reads search term
// counts from the search log on each scrape.
type TermCollector struct {
	store RecordLister
}

// NewTermCollector creates a collector over store.
func NewTermCollector(store RecordLister) *TermCollector {
	return &TermCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *TermCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- searchTermDesc
}

// Collect loads all search terms and emits them as counters.
func (c *TermCollector) Collect(ch chan<- prometheus.Metric) {
	records, err := c.store.LoadAll(context.Background())
	if err != nil {
		slog.Error("failed to collect search term metrics", "error", err)
		return
	}
	for _, r := range records {
		ch <- prometheus.MustNewConstMetric(
			searchTermDesc,
			prometheus.CounterValue,
			float64(r.Count),
			r.Term,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with reg. Must be called once at startup;
// later calls are ignored.
func Init(reg prometheus.Registerer, store RecordLister) {
	initOnce.Do(func() {
		reg.MustRegister(
			NewTermCollector(store),
			searchOutcomes,
			storeRecoveries,
			storeTerms,
		)
	})
}

// RecordSearch counts a handled search by outcome.
func RecordSearch(outcome string) {
	searchOutcomes.WithLabelValues(outcome).Inc()
}

// RecordRecovery counts a corrupted search log being reinitialized.
func RecordRecovery() {
	storeRecoveries.Inc()
}

// SetTermCount records the number of distinct terms seen by the integrity check.
func SetTermCount(n int) {
	storeTerms.Set(float64(n))
}
