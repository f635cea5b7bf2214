// Package metrics provides Prometheus metric collection and exposition.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metric-recording interface consumed by the service layer.
type Recorder interface {
	RecordTaskCreated()
	RecordTaskStatusChange(status string)
	RecordTaskDeleted()
	RecordNotificationEmitted(notificationType string)
	RecordLogin(success bool)
}

// Collector implements Recorder over Prometheus counters.
type Collector struct {
	tasksCreated         prometheus.Counter
	taskStatusChanges    *prometheus.CounterVec
	tasksDeleted         prometheus.Counter
	notificationsEmitted *prometheus.CounterVec
	logins               *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		tasksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskflow_tasks_created_total",
			Help: "Total number of tasks created.",
		}),
		taskStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskflow_task_status_changes_total",
			Help: "Total number of task status changes by new status.",
		}, []string{"status"}),
		tasksDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskflow_tasks_deleted_total",
			Help: "Total number of tasks deleted.",
		}),
		notificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskflow_notifications_emitted_total",
			Help: "Total number of notifications emitted by type.",
		}, []string{"type"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskflow_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.tasksCreated,
		c.taskStatusChanges,
		c.tasksDeleted,
		c.notificationsEmitted,
		c.logins,
	)

	return c
}

// RecordTaskCreated increments the task creation counter.
func (c *Collector) RecordTaskCreated() {
	c.tasksCreated.Inc()
}

// RecordTaskStatusChange increments the status-change counter for the new status.
func (c *Collector) RecordTaskStatusChange(status string) {
	c.taskStatusChanges.WithLabelValues(status).Inc()
}

// RecordTaskDeleted increments the task deletion counter.
func (c *Collector) RecordTaskDeleted() {
	c.tasksDeleted.Inc()
}

// RecordNotificationEmitted increments the notification counter for the given type.
func (c *Collector) RecordNotificationEmitted(notificationType string) {
	c.notificationsEmitted.WithLabelValues(notificationType).Inc()
}

// RecordLogin increments the login counter with a success/failure outcome label.
func (c *Collector) RecordLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	c.logins.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler serving the /metrics scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// NopRecorder is a Recorder that discards every observation. Used where
// metrics are optional, such as tests.
type NopRecorder struct{}

// RecordTaskCreated implements Recorder.
func (NopRecorder) RecordTaskCreated() {}

// RecordTaskStatusChange implements Recorder.
func (NopRecorder) RecordTaskStatusChange(string) {}

// RecordTaskDeleted implements Recorder.
func (NopRecorder) RecordTaskDeleted() {}

// RecordNotificationEmitted implements Recorder.
func (NopRecorder) RecordNotificationEmitted(string) {}

// RecordLogin implements Recorder.
func (NopRecorder) RecordLogin(bool) {}
