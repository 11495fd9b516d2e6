package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes hub membership and delivery counters to Prometheus.
// A nil *Metrics records nothing.
type Metrics struct {
	publicConnections prometheus.Gauge
	userRooms         prometheus.Gauge
	eventsPublished   *prometheus.CounterVec
	deliveryFailures  prometheus.Counter
}

// NewMetrics registers the hub collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		publicConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worktracker_ws_public_connections",
			Help: "Number of connections in the public room.",
		}),
		userRooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worktracker_ws_user_rooms",
			Help: "Number of non-empty user rooms.",
		}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worktracker_ws_events_published_total",
			Help: "Events handed to the dispatcher, by type.",
		}, []string{"type"}),
		deliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "worktracker_ws_delivery_failures_total",
			Help: "Sends that failed and evicted the connection.",
		}),
	}
}

func (m *Metrics) setMembership(public, rooms int) {
	if m == nil {
		return
	}
	m.publicConnections.Set(float64(public))
	m.userRooms.Set(float64(rooms))
}

func (m *Metrics) eventPublished(t EventType) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) deliveryFailed(n int) {
	if m == nil {
		return
	}
	m.deliveryFailures.Add(float64(n))
}
