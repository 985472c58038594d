// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package session

// Session is the request-scoped view of the session cookie. Changes mark it
// dirty; the middleware writes dirty sessions back before the response is sent.
type Session struct {
	data        Data
	dirty       bool
	invalidated bool
}

func newSession(data *Data) *Session {
	s := &Session{}
	if data != nil {
		s.data = *data
	}
	if s.data.Values == nil {
		s.data.Values = make(map[string]string)
	}
	return s
}

// New returns an empty session.
func New() *Session {
	return newSession(nil)
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.data.Values[key]
	return ok
}

// Get returns the value of key, or "".
func (s *Session) Get(key string) string {
	return s.data.Values[key]
}

// Put stores value under key.
func (s *Session) Put(key, value string) {
	if old, ok := s.data.Values[key]; ok && old == value {
		return
	}
	s.data.Values[key] = value
	s.dirty = true
}

// Forget removes key.
func (s *Session) Forget(key string) {
	if _, ok := s.data.Values[key]; !ok {
		return
	}
	delete(s.data.Values, key)
	s.dirty = true
}

// UserID returns the signed-in user, or 0.
func (s *Session) UserID() int64 {
	return s.data.UserID
}

// SetUserID signs the session in as id.
func (s *Session) SetUserID(id int64) {
	if s.data.UserID == id {
		return
	}
	s.data.UserID = id
	s.dirty = true
}

// Invalidate drops the user and all values.
func (s *Session) Invalidate() {
	s.data = Data{Values: make(map[string]string)}
	s.dirty = true
	s.invalidated = true
}

// Dirty reports whether the session changed during the request.
func (s *Session) Dirty() bool {
	return s.dirty
}
