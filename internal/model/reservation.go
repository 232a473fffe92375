package model

import "time"

// Reservation records a user's booking at a restaurant for a given date
// and time. The owning user is bound at creation from the authenticated
// caller and can never change afterwards. Date and Time are stored as
// their wire formats (YYYY-MM-DD and HH:MM) rather than time.Time: the
// two values are independent of each other and of any timezone.
//
// No two reservations may share the same (user, restaurant, date, time)
// tuple; the reservations table carries a unique key over those columns.
//
// Fields:
//  ID           – primary key identifier (reservations.id).
//  UserID       – owner; immutable after creation.
//  RestaurantID – restaurant being booked.
//  Date         – calendar date, YYYY-MM-DD.
//  Time         – wall-clock time, HH:MM 24-hour.
//  PeopleCount  – party size, positive.
//  FullName     – name of the reserving person; need not match the
//                 account name.
//  CreatedAt    – creation timestamp.
type Reservation struct {
	ID           uint64    // reservations.id
	UserID       uint64    // reservations.user_id
	RestaurantID uint64    // reservations.restaurant_id
	Date         string    // reservations.reservation_date
	Time         string    // reservations.reservation_time
	PeopleCount  uint32    // reservations.people_count
	FullName     string    // reservations.full_name
	CreatedAt    time.Time // reservations.created_at
}

// UserReservation is a reservation joined with the display name of its
// restaurant, as returned by the per-user listing.
type UserReservation struct {
	Reservation
	RestaurantName string // restaurants.name
}
