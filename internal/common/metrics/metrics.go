// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"feature", "operation", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"feature", "operation"},
	)

	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "payslip_pipeline_stage_duration_seconds",
			Help: "Duration of payslip pipeline stages in seconds",
		},
		[]string{"stage"},
	)

	PipelineAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payslip_analyses_total",
			Help: "Total number of payslip analyses by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total number of e-mail/SMS notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)
