package handler

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newJSONContext builds an Echo context carrying a JSON body plus a
// recorder to inspect the response.
func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, want, rec.Body.String())
	}
}

func wantBodyContains(t *testing.T, rec *httptest.ResponseRecorder, sub string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), sub) {
		t.Fatalf("body %q does not contain %q", rec.Body.String(), sub)
	}
}

// ----- user store stub -----

type stubUserStore struct {
	users  map[uint64]model.User // by id
	nextID uint64

	updatedName     string
	updatedEmail    string
	updatedPassword string
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: map[uint64]model.User{}, nextID: 1}
}

func (s *stubUserStore) add(u model.User) {
	if u.ID == 0 {
		u.ID = s.nextID
	}
	s.users[u.ID] = u
	if u.ID >= s.nextID {
		s.nextID = u.ID + 1
	}
}

func (s *stubUserStore) Create(ctx context.Context, name, email, password string, cost int) (uint64, error) {
	for _, u := range s.users {
		if u.Email == email {
			return 0, repository.ErrEmailExists
		}
	}
	id := s.nextID
	s.nextID++
	s.users[id] = model.User{ID: id, Name: name, Email: email, PasswordHash: "bcrypt:" + password}
	return id, nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sql.ErrNoRows
}

func (s *stubUserStore) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *stubUserStore) EmailTakenByOther(ctx context.Context, email string, id uint64) (bool, error) {
	for _, u := range s.users {
		if u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserStore) UpdateProfile(ctx context.Context, id uint64, name, email string) error {
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.Name, u.Email = name, email
	s.users[id] = u
	s.updatedName, s.updatedEmail = name, email
	return nil
}

func (s *stubUserStore) UpdatePassword(ctx context.Context, id uint64, newPassword string, cost int) error {
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = "bcrypt:" + newPassword
	s.users[id] = u
	s.updatedPassword = newPassword
	return nil
}

// ----- restaurant store stub -----

type stubRestaurantStore struct {
	items        []model.Restaurant
	lastFragment string
	err          error
}

func (s *stubRestaurantStore) List(ctx context.Context) ([]model.Restaurant, error) {
	return s.items, s.err
}

func (s *stubRestaurantStore) SearchByName(ctx context.Context, fragment string) ([]model.Restaurant, error) {
	s.lastFragment = fragment
	return s.items, s.err
}

// ----- reservation store stub -----

type stubReservationStore struct {
	byID    map[uint64]model.Reservation
	nextID  uint64
	current []model.UserReservation
	past    []model.UserReservation

	created   []model.Reservation
	updated   []model.Reservation
	deleted   []uint64
	createErr error
	updateErr error
}

func newStubReservationStore() *stubReservationStore {
	return &stubReservationStore{byID: map[uint64]model.Reservation{}, nextID: 1}
}

func (s *stubReservationStore) add(r model.Reservation) {
	if r.ID == 0 {
		r.ID = s.nextID
	}
	s.byID[r.ID] = r
	if r.ID >= s.nextID {
		s.nextID = r.ID + 1
	}
}

func (s *stubReservationStore) Create(ctx context.Context, res model.Reservation) (uint64, error) {
	if s.createErr != nil {
		return 0, s.createErr
	}
	res.ID = s.nextID
	s.nextID++
	s.byID[res.ID] = res
	s.created = append(s.created, res)
	return res.ID, nil
}

func (s *stubReservationStore) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	r, ok := s.byID[id]
	if !ok {
		return model.Reservation{}, sql.ErrNoRows
	}
	return r, nil
}

func (s *stubReservationStore) ListByUser(ctx context.Context, userID uint64, today string) ([]model.UserReservation, []model.UserReservation, error) {
	return s.current, s.past, nil
}

func (s *stubReservationStore) Update(ctx context.Context, res model.Reservation) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.byID[res.ID]; !ok {
		return sql.ErrNoRows
	}
	s.byID[res.ID] = res
	s.updated = append(s.updated, res)
	return nil
}

func (s *stubReservationStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := s.byID[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}
