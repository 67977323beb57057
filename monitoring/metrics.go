package monitoring

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchases_total",
			Help: "Primary market purchases per event",
		},
		[]string{"event"},
	)

	resaleSales = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resale_sales_total",
			Help: "Completed resale transactions per event",
		},
		[]string{"event"},
	)

	activeOffers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resale_offers_active_total",
			Help: "Current number of active resale offers",
		},
	)

	commissionVolume = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "commission_amount_total",
			Help: "Commission volume split by receiving party",
		},
		[]string{"party"},
	)

	storeOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Persistence operations by outcome",
		},
		[]string{"operation", "status"},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)
)

type Monitor struct{}

func NewMonitor() *Monitor {
	monitor := &Monitor{}

	// Start metrics collection
	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		goroutineCount.Set(float64(runtime.NumGoroutine()))
	}
}

// Track a primary market purchase
func TrackPurchase(eventName string) {
	ticketPurchases.WithLabelValues(eventName).Inc()
}

// Track a completed resale
func TrackResale(eventName string) {
	resaleSales.WithLabelValues(eventName).Inc()
}

// Track the active offer count after an offer mutation
func SetActiveOffers(count int) {
	activeOffers.Set(float64(count))
}

// Track commission amounts per receiving party
func TrackCommission(party string, amount float64) {
	commissionVolume.WithLabelValues(party).Add(amount)
}

// Track persistence operations
func TrackStoreOperation(operation, status string) {
	storeOperations.WithLabelValues(operation, status).Inc()
}
