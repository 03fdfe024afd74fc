// Package promhooks exports store events as Prometheus counters.
package promhooks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/cachegen"
)

type Hooks struct {
	lookups  *prometheus.CounterVec
	heals    *prometheus.CounterVec
	rejected prometheus.Counter
	errs     *prometheus.CounterVec
}

var _ cachegen.Hooks = (*Hooks)(nil)

// New registers the counters with reg. namespace prefixes every metric name
// and may be empty.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	h := &Hooks{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachegen",
			Name:      "lookups_total",
			Help:      "Store lookups by result.",
		}, []string{"result"}),
		heals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachegen",
			Name:      "self_heals_total",
			Help:      "Entries deleted on read by reason.",
		}, []string{"reason"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachegen",
			Name:      "set_rejected_total",
			Help:      "Writes dropped by the provider.",
		}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cachegen",
			Name:      "provider_errors_total",
			Help:      "Provider failures by operation.",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{h.lookups, h.heals, h.rejected, h.errs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func (h *Hooks) Lookup(_ string, hit bool) {
	if hit {
		h.lookups.WithLabelValues("hit").Inc()
		return
	}
	h.lookups.WithLabelValues("miss").Inc()
}

func (h *Hooks) SelfHeal(_ string, reason string) { h.heals.WithLabelValues(reason).Inc() }

func (h *Hooks) ProviderSetRejected(string) { h.rejected.Inc() }

func (h *Hooks) ProviderError(op, _ string, _ error) { h.errs.WithLabelValues(op).Inc() }
