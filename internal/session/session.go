// Package session holds the password-reset flow state: a single pending
// one-time password and the flag that opens the reset window once that code
// has been verified.
//
// The state is global to the running process, not scoped to a user or
// connection: a second generated code overwrites the first, and an open
// reset window admits whichever caller reaches resetPassword first.  All
// access goes through one mutex, so the state itself cannot be corrupted by
// concurrent requests, but the single-pending-OTP limitation remains and is
// part of the service contract.
package session

import (
	"strconv"
	"strings"
	"sync"
)

// Store is the reset-flow state machine.  The zero value is the Idle state:
// no pending code and a closed reset window.
type Store struct {
	mu         sync.Mutex
	pendingOTP string // "" means no code is pending
	resetOpen  bool
}

func New() *Store { return &Store{} }

// PutOTP records code as the single pending one-time password, replacing
// any code generated earlier.
func (s *Store) PutOTP(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingOTP = code
}

// VerifyOTP compares the submitted code against the pending one.  Codes are
// compared as integers, so "007123" and "7123" match.  On success the
// pending code is consumed and the reset window opens; each generated code
// can therefore be verified at most once.  On mismatch, or when no code is
// pending, the state is left unchanged.
func (s *Store) VerifyOTP(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pendingOTP == "" {
		return false
	}
	want, err := strconv.Atoi(s.pendingOTP)
	if err != nil {
		return false
	}
	got, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil || got != want {
		return false
	}
	s.pendingOTP = ""
	s.resetOpen = true
	return true
}

// ResetOpen reports whether the reset window is open.  It is a read-only
// probe and does not consume the window.
func (s *Store) ResetOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetOpen
}

// CloseReset shuts the reset window.  Called after a successful password
// reset so that one verified code authorises exactly one reset.
func (s *Store) CloseReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetOpen = false
}
