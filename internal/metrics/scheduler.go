package metrics

import "time"

// SchedulerObserver feeds tick callback timings into Prometheus
type SchedulerObserver struct{}

// ObserveCallback implements scheduler.Observer
func (SchedulerObserver) ObserveCallback(name, cadence string, d time.Duration, slow, panicked bool) {
	CallbackDuration.WithLabelValues(cadence, name).Observe(d.Seconds())
	if slow {
		SlowCallbacks.WithLabelValues(cadence, name).Inc()
	}
	if panicked {
		CallbackPanics.WithLabelValues(cadence, name).Inc()
	}
}
