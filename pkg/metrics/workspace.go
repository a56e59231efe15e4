package metrics

import "github.com/prometheus/client_golang/prometheus"

// WorkspaceMetrics tracks live browser-session workspaces.
type WorkspaceMetrics struct {
	active  prometheus.Gauge
	expired prometheus.Counter
}

func NewWorkspaceMetrics(reg prometheus.Registerer) *WorkspaceMetrics {
	if reg == nil {
		return &WorkspaceMetrics{}
	}
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sctracker_console_workspaces_active",
		Help: "Workspaces currently held in memory.",
	})
	expired := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sctracker_console_workspaces_expired_total",
		Help: "Workspaces dropped by the idle sweeper.",
	})
	reg.MustRegister(active, expired)
	return &WorkspaceMetrics{active: active, expired: expired}
}

func (m *WorkspaceMetrics) SetActive(n int) {
	if m == nil || m.active == nil {
		return
	}
	m.active.Set(float64(n))
}

func (m *WorkspaceMetrics) AddExpired(n int) {
	if m == nil || m.expired == nil || n <= 0 {
		return
	}
	m.expired.Add(float64(n))
}
