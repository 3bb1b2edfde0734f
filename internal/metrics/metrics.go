// Package metrics коллекторы prometheus для стора.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счётчики переходов и записей снимка
type Metrics struct {
	registry   *prometheus.Registry
	intents    *prometheus.CounterVec
	saves      *prometheus.CounterVec
	cartLines  prometheus.Gauge
	orderCount prometheus.Gauge
}

// New создаёт собственный реестр, чтобы экземпляры не конфликтовали
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zmart",
			Name:      "intents_total",
			Help:      "Dispatched intents by action and outcome.",
		}, []string{"action", "outcome"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zmart",
			Name:      "snapshot_saves_total",
			Help:      "Snapshot writes by result.",
		}, []string{"result"}),
		cartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zmart",
			Name:      "cart_lines",
			Help:      "Distinct products in the cart.",
		}),
		orderCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "zmart",
			Name:      "orders",
			Help:      "Orders in the snapshot.",
		}),
	}
	m.registry.MustRegister(m.intents, m.saves, m.cartLines, m.orderCount)
	return m
}

// Intent outcome: applied или noop
func (m *Metrics) Intent(action, outcome string) {
	m.intents.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) Saved(err error) {
	if err != nil {
		m.saves.WithLabelValues("error").Inc()
		return
	}
	m.saves.WithLabelValues("ok").Inc()
}

func (m *Metrics) Observe(cartLines, orders int) {
	m.cartLines.Set(float64(cartLines))
	m.orderCount.Set(float64(orders))
}

// Registry для тестов и дополнительных коллекторов
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
