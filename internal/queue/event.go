// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the account.events queue.
const (
	EventUserRegistered = "user.registered"
	EventPasswordReset  = "password.reset"
)

// AccountEvent is published when an account changes in a way downstream
// consumers care about: a registration or a completed password reset.  It
// contains enough information to log or notify without querying the primary
// database.  No secret material (passwords, hashes, OTP codes) is ever
// included.
type AccountEvent struct {
	Type       string `json:"type"`
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
