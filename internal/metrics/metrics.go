// Package metrics собирает Prometheus метрики HTTP слоя и жизненного цикла заявок.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillswap",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP запросы по маршруту, методу и статусу.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skillswap",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Длительность обработки HTTP запросов.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	RequestTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillswap",
		Subsystem: "requests",
		Name:      "transitions_total",
		Help:      "Попытки перехода статуса заявки по целевому статусу и результату.",
	}, []string{"to", "result"})

	SkillsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skillswap",
		Subsystem: "skills",
		Name:      "created_total",
		Help:      "Созданные навыки.",
	})
)

// TransitionResult — метка результата перехода: ok или код ошибки.
func TransitionResult(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}
