package auth

import (
	"testing"
	"time"
)

func TestToken_ValidAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tok := Token{Value: "abc", ExpiresAt: now.Add(time.Minute)}

	if !tok.ValidAt(now) {
		t.Fatalf("expected token to be valid before expiry")
	}
	if tok.ValidAt(now.Add(time.Minute)) {
		t.Fatalf("token must not be valid at its expiry instant")
	}
	if (Token{ExpiresAt: now.Add(time.Hour)}).ValidAt(now) {
		t.Fatalf("empty token must never be valid")
	}
}

func TestSessionState_String(t *testing.T) {
	cases := map[SessionState]string{
		StateDisconnected:   "disconnected",
		StateAuthenticating: "authenticating",
		StateConnected:      "connected",
		SessionState(9):     "state(9)",
	}
	for st, want := range cases {
		if got := st.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}

func TestStatusFunc_EmitNil(t *testing.T) {
	var f StatusFunc
	f.Emit(StatusInfo, "ignored")

	var got Status
	f = func(s Status) { got = s }
	f.Emit(StatusSuccess, "done")
	if got.Level != StatusSuccess || got.Text != "done" {
		t.Fatalf("unexpected status: %+v", got)
	}
}
