package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Put outcomes used as the "outcome" label
const (
	OutcomeInserted = "inserted"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

// Collector holds the metrics of a single hash table. Every engine
// gets its own registry so instances never share state.
type Collector struct {
	registry *prometheus.Registry

	Puts         *prometheus.CounterVec
	Rehashes     prometheus.Counter
	EntriesMoved prometheus.Counter
	Capacity     prometheus.Gauge
	Size         prometheus.Gauge
}

// New creates a Collector with its own registry
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		Puts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hashviz_puts_total",
			Help: "Put calls by outcome",
		}, []string{"outcome"}),
		Rehashes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hashviz_rehashes_total",
			Help: "Completed capacity doublings",
		}),
		EntriesMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hashviz_entries_moved_total",
			Help: "Entries redistributed by rehashes",
		}),
		Capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hashviz_capacity",
			Help: "Current bucket count",
		}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "hashviz_size",
			Help: "Current number of distinct keys",
		}),
	}

	c.registry.MustRegister(c.Puts, c.Rehashes, c.EntriesMoved, c.Capacity, c.Size)
	return c
}

// Registry exposes the registry, for instance to serve it over promhttp
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records the table shape
func (c *Collector) Observe(capacity, size int) {
	c.Capacity.Set(float64(capacity))
	c.Size.Set(float64(size))
}

// Put counts one put call
func (c *Collector) Put(outcome string) {
	c.Puts.WithLabelValues(outcome).Inc()
}

// Rehash counts one completed rehash
func (c *Collector) Rehash(moved int) {
	c.Rehashes.Inc()
	c.EntriesMoved.Add(float64(moved))
}

// WriteText writes every metric in the prometheus text exposition format
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
