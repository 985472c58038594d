// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session_test

import (
	"testing"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/services/session"
	"github.com/stretchr/testify/assert"
)

func TestSession_PutGet(t *testing.T) {
	s := session.New()

	assert.False(t, s.Has("locale"))
	assert.Empty(t, s.Get("locale"))

	s.Put("locale", "de")

	assert.True(t, s.Has("locale"))
	assert.Equal(t, "de", s.Get("locale"))
	assert.True(t, s.Dirty())
}

func TestSession_Forget(t *testing.T) {
	s := session.New()
	s.Forget("missing")
	assert.False(t, s.Dirty())

	s.Put("locale", "de")
	s.Forget("locale")

	assert.False(t, s.Has("locale"))
}

func TestSession_UserID(t *testing.T) {
	s := session.New()
	s.SetUserID(0)
	assert.False(t, s.Dirty())

	s.SetUserID(42)

	assert.Equal(t, int64(42), s.UserID())
	assert.True(t, s.Dirty())
}

func TestSession_Invalidate(t *testing.T) {
	s := session.New()
	s.SetUserID(42)
	s.Put("locale", "fr")

	s.Invalidate()

	assert.Zero(t, s.UserID())
	assert.False(t, s.Has("locale"))
	assert.True(t, s.Dirty())
}
