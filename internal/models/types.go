// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// TimestampFormat is the display format of Timestamp values (day-month-year, 12h clock).
const TimestampFormat = "02-01-2006 03:04:05"

// storage layouts SQLite hands back for DATETIME columns
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// Timestamp is a nullable point in time rendered with TimestampFormat in JSON.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// String formats the timestamp for display, or returns "" when unset.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampFormat)
}

// MarshalJSON renders the display format, or null when unset.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(TimestampFormat))
}

// UnmarshalJSON accepts null or a string in TimestampFormat.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimestampFormat, s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC(), nil
}

// HashedPassword is a bcrypt hash. Plaintext that reaches the database is hashed on write.
type HashedPassword string

// HashPassword hashes plain, returning already hashed input unchanged.
func HashPassword(plain string) (HashedPassword, error) {
	if HashedPassword(plain).IsHashed() {
		return HashedPassword(plain), nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return HashedPassword(hash), nil
}

// IsHashed reports whether p already is a bcrypt hash.
func (p HashedPassword) IsHashed() bool {
	_, err := bcrypt.Cost([]byte(p))
	return err == nil
}

// Check reports whether plain matches the hash.
func (p HashedPassword) Check(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p), []byte(plain)) == nil
}

// Value implements driver.Valuer.
func (p HashedPassword) Value() (driver.Value, error) {
	hashed, err := HashPassword(string(p))
	if err != nil {
		return nil, err
	}
	return string(hashed), nil
}

// Scan implements sql.Scanner.
func (p *HashedPassword) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*p = HashedPassword(v)
	case []byte:
		*p = HashedPassword(v)
	case nil:
		*p = ""
	default:
		return fmt.Errorf("cannot scan %T into HashedPassword", src)
	}
	return nil
}

// String hides the hash from fmt output.
func (p HashedPassword) String() string {
	return "********"
}
