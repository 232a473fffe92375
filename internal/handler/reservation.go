package handler

import (
	"context"      // context with cancellation for DB calls
	"database/sql" // sentinel errors returned from the repository
	"net/http"     // HTTP status codes
	"strconv"      // parsing path parameters
	"time"         // computing "today" for the upcoming/past split

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-reservation/internal/metrics"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/queue"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/service"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

// ReservationStore is the slice of the reservation repository the
// endpoints consume. *repository.ReservationRepo satisfies it; tests
// substitute stubs.
type ReservationStore interface {
	Create(ctx context.Context, res model.Reservation) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Reservation, error)
	ListByUser(ctx context.Context, userID uint64, today string) (current, past []model.UserReservation, err error)
	Update(ctx context.Context, res model.Reservation) error
	Delete(ctx context.Context, id uint64) error
}

// ReservationHandler owns the reservation lifecycle endpoints. All of
// them sit behind the JWT middleware; ownership of a record is enforced
// against the identity the gate placed in the context. Publish sends
// lifecycle events to the broker, best-effort: a broker failure never
// fails the request.
type ReservationHandler struct {
	Store   ReservationStore
	Publish func(ctx context.Context, ev queue.ReservationEvent) error
}

func NewReservationHandler(s ReservationStore) *ReservationHandler {
	if s == nil {
		panic("nil store passed to NewReservationHandler")
	}
	return &ReservationHandler{Store: s, Publish: service.PublishReservationEvent}
}

// reservationReq carries the mutable reservation fields for both create
// and update. The owner is deliberately absent: it always comes from
// the access token. reservation_date tolerates an ISO date-time and
// reservation_time tolerates seconds; both are normalized then checked
// against the fixed formats before any store access.
type reservationReq struct {
	RestaurantID uint64 `json:"restaurantId" validate:"required"`
	Date         string `json:"reservation_date" validate:"required"`
	Time         string `json:"reservation_time" validate:"required"`
	PeopleCount  uint32 `json:"people_count" validate:"required,gt=0"`
	FullName     string `json:"full_name" validate:"required"`
}

// reservationItem is the wire shape of a reservation record.
type reservationItem struct {
	ID             uint64 `json:"id"`
	Date           string `json:"reservation_date"`
	Time           string `json:"reservation_time"`
	PeopleCount    uint32 `json:"people_count"`
	FullName       string `json:"full_name"`
	RestaurantID   uint64 `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
}

// bindReservation binds, normalizes and validates a reservation body.
// It writes the error response itself and reports success via ok.
func bindReservation(c echo.Context) (req reservationReq, ok bool) {
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return req, false
	}
	req.Date = utils.NormalizeDate(req.Date)
	req.Time = utils.NormalizeTime(req.Time)
	if err := c.Validate(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		return req, false
	}
	if !utils.ValidDate(req.Date) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_date must be a valid YYYY-MM-DD date"})
		return req, false
	}
	if !utils.ValidTime(req.Time) {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation_time must be a valid HH:MM time"})
		return req, false
	}
	return req, true
}

func (h *ReservationHandler) publish(kind string, res model.Reservation) {
	if h.Publish == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	_ = h.Publish(ctx, queue.ReservationEvent{
		Kind:          kind,
		ReservationID: res.ID,
		UserID:        res.UserID,
		RestaurantID:  res.RestaurantID,
		Date:          res.Date,
		Time:          res.Time,
		PeopleCount:   res.PeopleCount,
		FullName:      res.FullName,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /api/reservations. The owner is the caller, never
// a body field. A reservation that collides with an existing
// (owner, restaurant, date, time) slot is rejected with 409.
func (h *ReservationHandler) Create(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	req, ok := bindReservation(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res := model.Reservation{
		UserID:       callerID,
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PeopleCount:  req.PeopleCount,
		FullName:     req.FullName,
	}
	id, err := h.Store.Create(ctx, res)
	if err != nil {
		if err == repository.ErrDuplicateReservation {
			metrics.ReservationConflictsTotal.Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "Reservation already exists."})
		}
		c.Logger().Errorf("reservation create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create reservation"})
	}
	res.ID = id

	metrics.ReservationsCreatedTotal.Inc()
	h.publish(queue.KindConfirmed, res)

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "Reservation created successfully",
		"reservationId": id,
	})
}

// List handles GET /api/reservations/user/:userId. Callers may only
// list their own reservations. The result is split relative to today:
// upcoming (date >= today) ascending and past descending, each carrying
// the restaurant display name.
func (h *ReservationHandler) List(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || targetID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	if callerID != targetID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	today := time.Now().UTC().Format(utils.DateLayout)
	current, past, err := h.Store.ListByUser(ctx, callerID, today)
	if err != nil {
		c.Logger().Errorf("reservation list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch reservations"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"current": toReservationItems(current),
		"past":    toReservationItems(past),
	})
}

func toReservationItems(in []model.UserReservation) []reservationItem {
	out := make([]reservationItem, 0, len(in))
	for _, m := range in {
		out = append(out, reservationItem{
			ID:             m.ID,
			Date:           m.Date,
			Time:           m.Time,
			PeopleCount:    m.PeopleCount,
			FullName:       m.FullName,
			RestaurantID:   m.RestaurantID,
			RestaurantName: m.RestaurantName,
		})
	}
	return out
}

// Update handles PUT /api/reservations/:id. All mutable fields are
// overwritten; owner and id never change. Date and time pass the same
// format validation as creation.
func (h *ReservationHandler) Update(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	req, ok := bindReservation(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existing, err := h.Store.GetByID(ctx, resID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
		}
		c.Logger().Errorf("reservation update: load %d: %v", resID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update reservation"})
	}
	if existing.UserID != callerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized"})
	}

	updated := model.Reservation{
		ID:           existing.ID,
		UserID:       existing.UserID, // immutable
		RestaurantID: req.RestaurantID,
		Date:         req.Date,
		Time:         req.Time,
		PeopleCount:  req.PeopleCount,
		FullName:     req.FullName,
	}
	if err := h.Store.Update(ctx, updated); err != nil {
		if err == repository.ErrDuplicateReservation {
			metrics.ReservationConflictsTotal.Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "Reservation already exists."})
		}
		c.Logger().Errorf("reservation update: %d: %v", resID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update reservation"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Reservation updated successfully"})
}

// Delete handles DELETE /api/reservations/:id. Only the owner may
// delete. The removed record is returned so the client can archive it
// locally instead of discarding it.
func (h *ReservationHandler) Delete(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	resID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || resID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	existing, err := h.Store.GetByID(ctx, resID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Reservation not found"})
		}
		c.Logger().Errorf("reservation delete: load %d: %v", resID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete reservation"})
	}
	if existing.UserID != callerID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Unauthorized"})
	}

	if err := h.Store.Delete(ctx, resID); err != nil {
		c.Logger().Errorf("reservation delete: %d: %v", resID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete reservation"})
	}

	metrics.ReservationsDeletedTotal.Inc()
	h.publish(queue.KindCancelled, existing)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Reservation deleted successfully",
		"reservation": reservationItem{
			ID:           existing.ID,
			Date:         existing.Date,
			Time:         existing.Time,
			PeopleCount:  existing.PeopleCount,
			FullName:     existing.FullName,
			RestaurantID: existing.RestaurantID,
		},
	})
}
