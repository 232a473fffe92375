package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// ReservationRepo is the authoritative store for reservation records.
// Dates and times are exchanged as their wire formats (YYYY-MM-DD,
// HH:MM); DATE_FORMAT/TIME_FORMAT keep the driver's time parsing out of
// the picture for these columns.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

const reservationCols = `id, user_id, restaurant_id,
	DATE_FORMAT(reservation_date,'%Y-%m-%d'),
	TIME_FORMAT(reservation_time,'%H:%i'),
	people_count, full_name, created_at`

// Create inserts a reservation and returns its generated id. The
// duplicate pre-check and the insert run inside one transaction, and
// the unique key on (user_id, restaurant_id, reservation_date,
// reservation_time) backstops the race between two identical concurrent
// requests; both paths surface ErrDuplicateReservation.
func (r *ReservationRepo) Create(ctx context.Context, res model.Reservation) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var existing uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservations
		 WHERE user_id=? AND restaurant_id=? AND reservation_date=? AND reservation_time=?
		 LIMIT 1`,
		res.UserID, res.RestaurantID, res.Date, res.Time).Scan(&existing)
	if err == nil {
		return 0, ErrDuplicateReservation
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	out, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		 (user_id, restaurant_id, reservation_date, reservation_time, people_count, full_name)
		 VALUES (?,?,?,?,?,?)`,
		res.UserID, res.RestaurantID, res.Date, res.Time, res.PeopleCount, res.FullName)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateReservation
		}
		return 0, err
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// GetByID fetches a single reservation. Absence is sql.ErrNoRows;
// ownership is the caller's concern.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var m model.Reservation
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+reservationCols+" FROM reservations WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.UserID, &m.RestaurantID, &m.Date, &m.Time, &m.PeopleCount, &m.FullName, &m.CreatedAt)
	return m, err
}

// ListByUser returns the user's reservations split into two ordered
// sequences relative to today (YYYY-MM-DD): upcoming (date >= today,
// ascending) and past (date < today, descending), each joined with the
// restaurant display name. Ties in date order secondarily by time for
// determinism.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64, today string) (current, past []model.UserReservation, err error) {
	current, err = r.listByUser(ctx, userID,
		`WHERE r.user_id=? AND r.reservation_date >= ?
		 ORDER BY r.reservation_date ASC, r.reservation_time ASC`, today)
	if err != nil {
		return nil, nil, err
	}
	past, err = r.listByUser(ctx, userID,
		`WHERE r.user_id=? AND r.reservation_date < ?
		 ORDER BY r.reservation_date DESC, r.reservation_time DESC`, today)
	if err != nil {
		return nil, nil, err
	}
	return current, past, nil
}

func (r *ReservationRepo) listByUser(ctx context.Context, userID uint64, tail, today string) ([]model.UserReservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT r.id, r.user_id, r.restaurant_id,
		        DATE_FORMAT(r.reservation_date,'%Y-%m-%d'),
		        TIME_FORMAT(r.reservation_time,'%H:%i'),
		        r.people_count, r.full_name, r.created_at, rest.name
		 FROM reservations r
		 JOIN restaurants rest ON r.restaurant_id = rest.restaurant_id `+tail,
		userID, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.UserReservation, 0, 8)
	for rows.Next() {
		var m model.UserReservation
		if err := rows.Scan(&m.ID, &m.UserID, &m.RestaurantID, &m.Date, &m.Time,
			&m.PeopleCount, &m.FullName, &m.CreatedAt, &m.RestaurantName); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update overwrites all mutable fields of a reservation. Owner and id
// never change. Moving the reservation onto a slot the owner already
// booked trips the unique key and reports a duplicate.
func (r *ReservationRepo) Update(ctx context.Context, res model.Reservation) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE reservations
		 SET restaurant_id=?, reservation_date=?, reservation_time=?, people_count=?, full_name=?
		 WHERE id=?`,
		res.RestaurantID, res.Date, res.Time, res.PeopleCount, res.FullName, res.ID)
	if isDuplicateKey(err) {
		return ErrDuplicateReservation
	}
	return err
}

// Delete removes a reservation by id.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM reservations WHERE id=?", id)
	return err
}
