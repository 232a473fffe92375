// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds published to the reservation.events queue.
const (
	KindConfirmed = "confirmed"
	KindCancelled = "cancelled"
)

// ReservationEvent is published when a reservation is created or
// deleted. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type ReservationEvent struct {
	Kind           string `json:"kind"` // confirmed | cancelled
	ReservationID  uint64 `json:"reservation_id"`
	UserID         uint64 `json:"user_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	Date           string `json:"reservation_date"` // YYYY-MM-DD
	Time           string `json:"reservation_time"` // HH:MM
	PeopleCount    uint32 `json:"people_count"`
	FullName       string `json:"full_name"`
	OccurredAt     string `json:"occurred_at"` // RFC3339 UTC
}
