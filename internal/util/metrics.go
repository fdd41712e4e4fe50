package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders placed",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order submissions",
	}, []string{"reason"})

	OrderStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of administrative order status updates",
	}, []string{"status"})

	ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_created_total",
		Help: "Total number of table reservations booked",
	})

	ReservationStatusUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_status_updates_total",
		Help: "Total number of administrative reservation status updates",
	}, []string{"status"})

	ReservationsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservations_deleted_total",
		Help: "Total number of reservations removed",
	})

	MenuCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_cache_hits_total",
		Help: "Total number of menu reads served from Redis",
	})

	MenuCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_cache_misses_total",
		Help: "Total number of menu reads that fell through to the database",
	})

	KitchenEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kitchen_events_total",
		Help: "Total number of order events consumed by the kitchen worker",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
