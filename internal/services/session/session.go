// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/config"
	"github.com/gorilla/securecookie"
)

const keyLength = 32

// Data is the payload stored in the session cookie.
type Data struct {
	UserID    int64
	Values    map[string]string
	ExpiresAt time.Time
}

// Manager signs, encrypts and validates session cookies.
type Manager struct {
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     int
	secure     bool
}

// NewManager creates a session manager. An empty hash key generates a random
// one, which invalidates sessions on restart.
func NewManager(cfg *config.SessionConfig, secure bool) (*Manager, error) {
	hashKey, err := decodeKey(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}
	if hashKey == nil {
		slog.Warn("session_hash_key_missing", "hint", "sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(keyLength)
	}

	blockKey, err := decodeKey(cfg.BlockKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session block key: %w", err)
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
	}, nil
}

func decodeKey(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if len(key) != keyLength {
		return nil, fmt.Errorf("must be %d bytes, got %d", keyLength, len(key))
	}
	return key, nil
}

// Load returns the session carried by the request, or a fresh empty session
// when the cookie is missing, tampered with or expired.
func (m *Manager) Load(r *http.Request) *Session {
	data, err := m.Parse(r)
	if err != nil || data == nil {
		return newSession(nil)
	}
	return newSession(data)
}

// Parse decodes the session cookie. It returns nil without error when there
// is no usable session.
func (m *Manager) Parse(r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.cookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Data
	if err := m.codec.Decode(m.cookieName, cookie.Value, &data); err != nil {
		slog.Debug("session_decode_failed", "error", err)
		return nil, nil
	}
	if !data.ExpiresAt.IsZero() && time.Now().After(data.ExpiresAt) {
		return nil, nil
	}
	return &data, nil
}

// Encode turns the session into a cookie. An invalidated session yields a
// deletion cookie.
func (m *Manager) Encode(s *Session) (*http.Cookie, error) {
	if s.invalidated && s.data.UserID == 0 && len(s.data.Values) == 0 {
		return m.Clear(), nil
	}

	data := Data{
		UserID:    s.data.UserID,
		Values:    maps.Clone(s.data.Values),
		ExpiresAt: time.Now().Add(time.Duration(m.maxAge) * time.Second),
	}
	encoded, err := m.codec.Encode(m.cookieName, data)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return m.cookie(encoded, m.maxAge), nil
}

// Create returns a cookie for a new session signed in as userID.
func (m *Manager) Create(userID int64) (*http.Cookie, error) {
	s := newSession(nil)
	s.SetUserID(userID)
	return m.Encode(s)
}

// Clear returns a cookie that removes the session.
func (m *Manager) Clear() *http.Cookie {
	return m.cookie("", -1)
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
