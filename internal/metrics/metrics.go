package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "safechat_"

	resultAccepted = "accepted"
	resultIgnored  = "ignored"

	reasonNone = "none"
)

// Alerts counts emergency workflow outcomes. A nil *Alerts is a no-op.
type Alerts struct {
	registry   *prometheus.Registry
	triggers   *prometheus.CounterVec
	dispatched *prometheus.CounterVec
	cancelled  prometheus.Counter
	frames     prometheus.Counter
}

// NewAlerts registers the counters on a private registry.
func NewAlerts() *Alerts {
	reg := prometheus.NewRegistry()
	a := &Alerts{
		registry: reg,
		triggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_triggers_total",
				Help: "Panic triggers by result",
			},
			[]string{"result"},
		),
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_dispatched_total",
				Help: "Alerts handed to the notifier by missing-location reason",
			},
			[]string{"reason"},
		),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "alerts_cancelled_total",
			Help: "Alerts cancelled at the confirmation step",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "indicator_frames_total",
			Help: "Animation frames stepped by the tab indicator",
		}),
	}
	reg.MustRegister(a.triggers, a.dispatched, a.cancelled, a.frames)
	return a
}

// Registry exposes the private registry for inspection.
func (a *Alerts) Registry() *prometheus.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *Alerts) Trigger(accepted bool) {
	if a == nil {
		return
	}
	result := resultIgnored
	if accepted {
		result = resultAccepted
	}
	a.triggers.WithLabelValues(result).Inc()
}

func (a *Alerts) Dispatched(reason string) {
	if a == nil {
		return
	}
	if reason == "" {
		reason = reasonNone
	}
	a.dispatched.WithLabelValues(reason).Inc()
}

func (a *Alerts) Cancelled() {
	if a == nil {
		return
	}
	a.cancelled.Inc()
}

func (a *Alerts) Frame() {
	if a == nil {
		return
	}
	a.frames.Inc()
}

// Summary renders every non-zero counter on one line for the exit log.
func (a *Alerts) Summary() string {
	if a == nil {
		return ""
	}
	families, err := a.registry.Gather()
	if err != nil {
		return "gather: " + err.Error()
	}
	var parts []string
	for _, mf := range families {
		name := strings.TrimPrefix(mf.GetName(), metricPrefix)
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			key := name
			if pairs := m.GetLabel(); len(pairs) > 0 {
				labels := make([]string, 0, len(pairs))
				for _, lp := range pairs {
					labels = append(labels, lp.GetName()+"="+lp.GetValue())
				}
				key += "{" + strings.Join(labels, ",") + "}"
			}
			parts = append(parts, fmt.Sprintf("%s=%g", key, v))
		}
	}
	return strings.Join(parts, " ")
}
