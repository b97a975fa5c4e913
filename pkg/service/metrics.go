package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fassara_translations_total",
			Help: "Total number of translation requests handled by the service",
		},
		[]string{"mode", "status"},
	)

	demoLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fassara_demo_lookups_total",
			Help: "Demo-mode phrasebook lookups by outcome (hit or placeholder)",
		},
		[]string{"result"},
	)

	directionSwapsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fassara_direction_swaps_total",
			Help: "Requests whose declared direction was auto-corrected by the Hausa heuristic",
		},
	)
)
