package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "handler-test-secret",
		AccessTTLMin: 30,
		BcryptCost:   bcrypt.MinCost,
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	e := newTestEcho()
	store := newStubUserStore()
	h := NewAuthHandler(testConfig(), store)

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	wantStatus(t, rec, http.StatusCreated)
	wantBodyContains(t, rec, "User registered successfully!")

	if _, err := store.GetByEmail(c.Request().Context(), "ana@example.com"); err != nil {
		t.Fatalf("user not stored: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newTestEcho()
	store := newStubUserStore()
	store.add(model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"})
	h := NewAuthHandler(testConfig(), store)

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/register",
		`{"name":"Other","email":"ana@example.com","password":"secret2"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	wantStatus(t, rec, http.StatusBadRequest)
	wantBodyContains(t, rec, "Email already registered.")
	if len(store.users) != 1 {
		t.Fatalf("duplicate registration created a user")
	}
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(testConfig(), newStubUserStore())

	cases := []string{
		`{"email":"ana@example.com","password":"secret1"}`, // missing name
		`{"name":"Ana","email":"not-an-email","password":"secret1"}`,
		`{"name":"Ana","email":"ana@example.com","password":"short"}`,
	}
	for _, body := range cases {
		c, rec := newJSONContext(e, http.MethodPost, "/api/users/register", body)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	e := newTestEcho()
	store := newStubUserStore()
	hash, err := utils.HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store.add(model.User{ID: 4, Name: "Ana", Email: "ana@example.com", PasswordHash: hash})
	h := NewAuthHandler(testConfig(), store)

	c, rec := newJSONContext(e, http.MethodPost, "/api/users/login",
		`{"email":"ana@example.com","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	wantStatus(t, rec, http.StatusOK)

	var resp struct {
		Message  string `json:"message"`
		Token    string `json:"token"`
		Username string `json:"username"`
		UserID   uint64 `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Login successful" || resp.Username != "Ana" || resp.UserID != 4 {
		t.Fatalf("unexpected response: %+v", resp)
	}

	id, err := utils.ParseAccessToken(testConfig().JWTSecret, resp.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.UserID != 4 || id.Email != "ana@example.com" {
		t.Fatalf("token identity = %+v", id)
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginFailuresShareOneShape(t *testing.T) {
	e := newTestEcho()
	store := newStubUserStore()
	hash, err := utils.HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	store.add(model.User{ID: 4, Name: "Ana", Email: "ana@example.com", PasswordHash: hash})
	h := NewAuthHandler(testConfig(), store)

	c1, rec1 := newJSONContext(e, http.MethodPost, "/api/users/login",
		`{"email":"nobody@example.com","password":"secret1"}`)
	if err := h.Login(c1); err != nil {
		t.Fatalf("Login: %v", err)
	}
	c2, rec2 := newJSONContext(e, http.MethodPost, "/api/users/login",
		`{"email":"ana@example.com","password":"wrong-password"}`)
	if err := h.Login(c2); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if rec1.Code != http.StatusBadRequest || rec2.Code != http.StatusBadRequest {
		t.Fatalf("statuses = %d / %d, want 400 / 400", rec1.Code, rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("failure bodies differ: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
}
