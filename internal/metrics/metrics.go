package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "handmade"

var (
	// HTTPRequestsTotal HTTP 请求计数
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP 请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ProductConfigurationsTotal 规格组合落库次数
	ProductConfigurationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_configurations_total",
			Help:      "Total number of product configuration materializations",
		},
		[]string{"operation", "result"},
	)

	// ProductItemsMaterialized 落库的可售单元数量
	ProductItemsMaterialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_items_materialized_total",
			Help:      "Total number of product items created by materialization",
		},
	)

	// OrderTransitionsTotal 订单状态流转次数
	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Total number of order status transitions",
		},
		[]string{"status"},
	)

	// QueueTasksTotal 后台任务处理次数
	QueueTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_tasks_total",
			Help:      "Total number of processed background tasks",
		},
		[]string{"task", "result"},
	)
)

// RecordMaterialization 记录一次规格组合落库
func RecordMaterialization(operation string, items int, err error) {
	ProductConfigurationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	if err == nil && items > 0 {
		ProductItemsMaterialized.Add(float64(items))
	}
}

// RecordOrderTransition 记录订单状态流转
func RecordOrderTransition(status string) {
	OrderTransitionsTotal.WithLabelValues(status).Inc()
}

// RecordQueueTask 记录后台任务结果
func RecordQueueTask(task string, err error) {
	QueueTasksTotal.WithLabelValues(task, resultLabel(err)).Inc()
}

// ObserveHTTPRequest 记录 HTTP 请求
func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
