// Package metrics mirrors game state into Prometheus collectors and can
// dump them in the node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"gamifylife/internal/engine"
)

type Recorder struct {
	reg *prometheus.Registry

	points    prometheus.Gauge
	level     prometheus.Gauge
	tasks     prometheus.Gauge
	inventory prometheus.Gauge
	mutations *prometheus.CounterVec
	expired   prometheus.Counter

	threshold int
	textfile  string
}

// New builds a recorder on a private registry. textfile may be empty.
func New(threshold int, textfile string) *Recorder {
	r := &Recorder{
		reg:       prometheus.NewRegistry(),
		threshold: threshold,
		textfile:  textfile,
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gamifylife",
			Name:      "points",
			Help:      "Current XP total.",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gamifylife",
			Name:      "level",
			Help:      "Current level derived from XP.",
		}),
		tasks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gamifylife",
			Name:      "tasks",
			Help:      "Number of quests.",
		}),
		inventory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gamifylife",
			Name:      "inventory_items",
			Help:      "Purchased rewards not yet redeemed.",
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gamifylife",
			Name:      "mutations_total",
			Help:      "State changes by operation.",
		}, []string{"op"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gamifylife",
			Name:      "tasks_expired_total",
			Help:      "Quests failed by the expiration sweep.",
		}),
	}
	r.reg.MustRegister(r.points, r.level, r.tasks, r.inventory, r.mutations, r.expired)
	return r
}

// Observe records one state change.
func (r *Recorder) Observe(ch engine.Change) {
	r.mutations.WithLabelValues(string(ch.Op)).Inc()
	r.points.Set(float64(ch.State.Points))
	r.level.Set(float64(engine.LevelForPoints(ch.State.Points, r.threshold)))
	r.tasks.Set(float64(len(ch.State.Tasks)))
	r.inventory.Set(float64(len(ch.State.Inventory)))
}

// ObserveExpired counts quests failed by one sweep.
func (r *Recorder) ObserveExpired(n int) {
	if n > 0 {
		r.expired.Add(float64(n))
	}
}

// Flush writes the textfile if one is configured.
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
