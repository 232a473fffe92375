package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors for token verification failures
	"time"   // expiry calculations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string. Exp stores the UTC
// expiration timestamp. Possession of a currently valid token is the whole
// session; nothing is stored server-side.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Identity is the caller identity decoded from a verified access token.
// It is the only trusted source of "who is calling"; request bodies must
// never override it.
type Identity struct {
	UserID uint64 // users.user_id bound at login time
	Email  string // email at the time the token was issued
}

// ErrInvalidToken is returned by ParseAccessToken for any verification
// failure: bad signature, wrong algorithm, malformed claims or expiry.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user ID, the user's email and a TTL in minutes, and
// returns the signed token together with its expiration time. Claims:
// subject (sub), email, expiration (exp) and issued at (iat).
func NewAccessToken(secret string, userID uint64, email string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token string
// and returns the identity it carries. Any failure collapses into
// ErrInvalidToken so callers cannot distinguish why a token was rejected.
func ParseAccessToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HS256 family tokens are accepted; reject anything else.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64) // numeric JSON values decode as float64
	if !ok || sub <= 0 {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return Identity{UserID: uint64(sub), Email: email}, nil
}
