package prometheus

import (
	"fmt"
	"net/http"

	"github.com/Strum355/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

var (
	refreshCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_schedule_refresh_total",
		Help: "The number of completed summary refresh cycles",
	})
	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_schedule_refresh_failures_total",
		Help: "The number of refresh cycles that failed to fetch or publish",
	})
	flightsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flights_created_total",
		Help: "The number of flight events created",
	})
	flightsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flights_started_total",
		Help: "The number of flights announced as open for check-in",
	})
	flightsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flights_cancelled_total",
		Help: "The number of flight events cancelled",
	})
	checkinsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_checkins_closed_total",
		Help: "The number of check-in closed announcements posted",
	})
)

// Refreshed is called after each successful summary refresh cycle.
func Refreshed() {
	refreshCycles.Inc()
}

// RefreshFailed is called when a refresh cycle aborts.
func RefreshFailed() {
	refreshFailures.Inc()
}

// FlightCreated ...
func FlightCreated() {
	flightsCreated.Inc()
}

// FlightStarted ...
func FlightStarted() {
	flightsStarted.Inc()
}

// FlightCancelled ...
func FlightCancelled() {
	flightsCancelled.Inc()
}

// CheckinClosed is called when a delayed check-in closed announcement fires.
func CheckinClosed() {
	checkinsClosed.Inc()
}

// CreateExporter serves the metrics endpoint. Run it on its own goroutine.
func CreateExporter() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(fmt.Sprintf(":%d", viper.GetInt("prom.port")), mux); err != nil {
		log.WithError(err).Error("Prometheus exporter stopped")
	}
}
