// Package session stores the bearer token issued by the backend and answers
// the one question every data-fetching command asks first: is there a usable
// credential? Missing or expired tokens are a precondition failure, raised
// before any network call.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"momentum-cli/internal/store"
)

var (
	// ErrNoSession means no token is stored; the user must log in.
	ErrNoSession = errors.New("not logged in; run `momentum login`")
	// ErrExpired means the stored token's exp claim is in the past.
	ErrExpired = errors.New("session expired; run `momentum login`")
)

const tokenFileName = "token"

type Session struct {
	Token string
}

func tokenPath() (string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}

// Load reads and validates the stored token.
func Load() (Session, error) {
	path, err := tokenPath()
	if err != nil {
		return Session{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, ErrNoSession
		}
		return Session{}, err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return Session{}, ErrNoSession
	}
	if expired(token, time.Now()) {
		return Session{}, ErrExpired
	}
	return Session{Token: token}, nil
}

// Save persists the token (0600; it is a credential).
func Save(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Clear removes the stored token (logout). Clearing an absent token is fine.
func Clear() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// expired checks the JWT exp claim when the token carries one. Tokens that
// are not three-segment JWTs (or have no exp) are treated as opaque and left
// for the backend to judge.
func expired(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil || claims.Exp == 0 {
		return false
	}
	return now.Unix() >= claims.Exp
}
