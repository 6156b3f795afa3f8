package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Credentials is the body of the auth/login and auth/register calls.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"tipoUsuario,omitempty"`
}

// UserTypeRegular is the account type assigned on self-registration.
const UserTypeRegular = "USUARIO"

// User is the authenticated identity returned by usuario/me.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Token is a bearer token issued by the backend. The token string is
// opaque; only its expiry is interpreted, always in UTC.
type Token struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed.
func (t Token) Expired() bool {
	return !t.ExpiresAt.After(time.Now().UTC())
}

func (t *Token) UnmarshalJSON(data []byte) error {
	var raw struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	expiresAt, err := parseAPITime(raw.ExpiresAt)
	if err != nil {
		return fmt.Errorf("parsing token expiry: %w", err)
	}

	t.Token = raw.Token
	t.ExpiresAt = expiresAt.UTC()
	return nil
}
