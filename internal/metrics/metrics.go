// Package metrics defines and registers the Prometheus metrics exposed
// at /metrics. It is the single source of truth for metric names and
// help strings; handlers increment these counters directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resto"

// ReservationsCreatedTotal counts reservations successfully created.
var ReservationsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "reservations_created_total",
	Help:      "Total number of reservations successfully created.",
})

// ReservationsDeletedTotal counts reservations deleted by their owner.
var ReservationsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "reservations_deleted_total",
	Help:      "Total number of reservations deleted by their owner.",
})

// ReservationConflictsTotal counts create/update attempts rejected by
// the duplicate-reservation invariant.
var ReservationConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "reservation_conflicts_total",
	Help:      "Total number of requests rejected as duplicate reservations.",
})

// LoginFailuresTotal counts login attempts rejected as invalid
// credentials. Unknown email and wrong password are indistinguishable
// here, as they are on the wire.
var LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "login_failures_total",
	Help:      "Total number of login attempts rejected as invalid credentials.",
})
