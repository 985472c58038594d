// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// User is an account holder. Password and RememberToken never leave the
// process in JSON.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID              int64          `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	Password        HashedPassword `db:"password" json:"-"`
	RememberToken   *string        `db:"remember_token" json:"-"`
	EmailVerifiedAt Timestamp      `db:"email_verified_at" json:"email_verified_at"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time     `db:"deleted_at" json:"deleted_at,omitempty"`

	// Locale is read from the owned profile row; empty when the user has no profile.
	Locale string `db:"locale" json:"locale"`
}

// UserAttributes are the only user fields that may be filled from request input.
type UserAttributes struct {
	Name     string `json:"name" form:"name" validate:"required,max=255"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required"`
}

// NewUser builds a user from fillable attributes.
func NewUser(attrs UserAttributes) (*User, error) {
	u := &User{}
	if err := u.Fill(attrs); err != nil {
		return nil, err
	}
	return u, nil
}

// Fill copies the fillable attributes onto the user. Empty values leave the
// field untouched; the password is hashed.
func (u *User) Fill(attrs UserAttributes) error {
	if attrs.Name != "" {
		u.Name = attrs.Name
	}
	if attrs.Email != "" {
		u.Email = attrs.Email
	}
	if attrs.Password != "" {
		return u.SetPassword(attrs.Password)
	}
	return nil
}

// SetPassword stores the bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hashed, err := HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

// Trashed reports whether the user has been soft-deleted.
func (u *User) Trashed() bool {
	return u.DeletedAt != nil
}

// HasVerifiedEmail reports whether the user has confirmed ownership of the email address.
func (u *User) HasVerifiedEmail() bool {
	return !u.EmailVerifiedAt.IsZero()
}

// EmailForVerification returns the address verification mails are sent to.
func (u *User) EmailForVerification() string {
	return u.Email
}
