package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "skillswap",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Открытые WebSocket подключения.",
	})
	deliveredMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skillswap",
		Subsystem: "ws",
		Name:      "delivered_messages_total",
		Help:      "Сообщения, поставленные в очередь клиентам.",
	})
)
