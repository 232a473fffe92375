package repository

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql 1062", errors.New("Error 1062 (23000): Duplicate entry 'ana@example.com' for key 'uq_users_email'"), true},
		{"wrapped 1062", errors.New("insert user: Error 1062: Duplicate entry"), true},
		{"other mysql error", errors.New("Error 1452 (23000): foreign key constraint fails"), false},
		{"no rows", sql.ErrNoRows, false},
	}
	for _, tc := range cases {
		if got := isDuplicateKey(tc.err); got != tc.want {
			t.Errorf("%s: isDuplicateKey = %v, want %v", tc.name, got, tc.want)
		}
	}
}
