package auth

// Package auth contains domain-level types for the operator session.
// It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"time"
)

// DefaultScope is the permission set requested when minting directory tokens.
const DefaultScope = "https://graph.microsoft.com/.default"

// SessionState is the connection state of the operator session.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateAuthenticating
	StateConnected
)

func (s SessionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAuthenticating:
		return "authenticating"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Token is a bearer access token and its absolute expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time // UTC
}

// ValidAt reports whether the token can be reused at now.
func (t Token) ValidAt(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// IsZero reports whether no token is held.
func (t Token) IsZero() bool { return t.Value == "" }

// StatusLevel tells a renderer how to present a status line.
type StatusLevel string

const (
	StatusProgress StatusLevel = "progress"
	StatusSuccess  StatusLevel = "success"
	StatusFailure  StatusLevel = "failure"
	StatusInfo     StatusLevel = "info"
	// StatusClear hides the status line.
	StatusClear StatusLevel = "clear"
)

// Status is a user-facing status line emitted by the session or the search coordinator.
type Status struct {
	Level StatusLevel
	Text  string
}

// StatusFunc receives status updates. Implementations must not call back into
// the component that emitted the status.
type StatusFunc func(Status)

// Emit calls f when it is set.
func (f StatusFunc) Emit(level StatusLevel, text string) {
	if f != nil {
		f(Status{Level: level, Text: text})
	}
}
