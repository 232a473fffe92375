package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password is held only as a bcrypt hash; the plaintext is
// never persisted or compared by equality anywhere in the system.
// Handlers define separate response types with JSON tags, so none are
// attached here.
//
// Fields:
//  ID           – primary key (users.user_id).
//  Name         – display username, shown to the user after login.
//  Email        – unique email address, normalized to lower case.
//  PasswordHash – bcrypt hashed password (users.password).
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last profile or password change.
type User struct {
	ID           uint64    // users.user_id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
