package main

import (
	"github.com/caarlos0/alarmd"
	"github.com/caarlos0/alarmd/console"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func registerMetrics(mon *alarmd.Monitor, hub *console.Hub) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "alarm",
		Name:        "state",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Alarm)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "sensor",
		Name:        "gas",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return boolAs[float64](mon.Snapshot().Gas)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "sensor",
		Name:        "overtemp",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return boolAs[float64](mon.Snapshot().OverTemp)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "keypad",
		Name:        "locked",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return boolAs[float64](mon.Snapshot().KeypadLocked)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "keypad",
		Name:        "incorrect_codes",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().KeypadAttempts)
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "alarmd",
		Subsystem:   "console",
		Name:        "links",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(hub.Links())
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "iterations_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Iterations)
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "reports_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Reports)
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "warnings_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Warnings)
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "commands_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Commands)
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "unknown_commands_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Unknown)
	})

	promauto.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   "alarmd",
		Subsystem:   "loop",
		Name:        "dropped_writes_total",
		Help:        "",
		ConstLabels: map[string]string{},
	}, func() float64 {
		return float64(mon.Snapshot().Dropped)
	})
}
