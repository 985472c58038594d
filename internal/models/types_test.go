// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models_test

import (
	"fmt"
	"testing"
	"time"

	"codeberg.org/oliverandrich/go-webapp-i18n/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_Scan(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time", want},
		{"sqlite string", "2024-03-09 14:05:06+00:00"},
		{"plain string", "2024-03-09 14:05:06"},
		{"rfc3339 bytes", []byte("2024-03-09T14:05:06Z")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts models.Timestamp
			require.NoError(t, ts.Scan(tt.src))
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestamp_ScanNil(t *testing.T) {
	ts := models.NewTimestamp(time.Now())

	require.NoError(t, ts.Scan(nil))

	assert.True(t, ts.IsZero())
}

func TestTimestamp_ScanInvalid(t *testing.T) {
	var ts models.Timestamp

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}

func TestTimestamp_Value(t *testing.T) {
	v, err := models.Timestamp{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	now := time.Now()
	v, err = models.NewTimestamp(now).Value()
	require.NoError(t, err)
	assert.Equal(t, now.UTC(), v)
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	ts := models.NewTimestamp(time.Date(2024, 12, 31, 23, 59, 58, 0, time.UTC))

	data, err := ts.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `"31-12-2024 11:59:58"`, string(data))

	var null models.Timestamp
	require.NoError(t, null.UnmarshalJSON([]byte("null")))
	assert.True(t, null.IsZero())
}

func TestTimestamp_String(t *testing.T) {
	assert.Empty(t, models.Timestamp{}.String())
	assert.Equal(t, "01-02-2025 09:30:00",
		models.NewTimestamp(time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)).String())
}

func TestHashPassword(t *testing.T) {
	hashed, err := models.HashPassword("s3cret-passphrase")
	require.NoError(t, err)

	assert.True(t, hashed.IsHashed())
	assert.True(t, hashed.Check("s3cret-passphrase"))
}

func TestHashPassword_AlreadyHashed(t *testing.T) {
	hashed, err := models.HashPassword("s3cret-passphrase")
	require.NoError(t, err)

	again, err := models.HashPassword(string(hashed))
	require.NoError(t, err)

	assert.Equal(t, hashed, again)
}

func TestHashedPassword_ValueHashesPlaintext(t *testing.T) {
	v, err := models.HashedPassword("plaintext value").Value()
	require.NoError(t, err)

	stored, ok := v.(string)
	require.True(t, ok)
	assert.NotEqual(t, "plaintext value", stored)
	assert.True(t, models.HashedPassword(stored).Check("plaintext value"))
}

func TestHashedPassword_StringIsMasked(t *testing.T) {
	p := models.HashedPassword("anything")

	assert.Equal(t, "********", fmt.Sprint(p))
}
