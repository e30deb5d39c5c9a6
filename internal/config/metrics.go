package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configLoadTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "config_load_timestamp_seconds",
		Help: "Unix timestamp of the last successful configuration load",
	})

	configValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "config_validation_errors_total",
		Help: "Total number of configuration validation errors by field",
	}, []string{"field"})
)
