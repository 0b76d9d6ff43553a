package config

import "time"

const (
	defaultSessionCountdown = 60
	defaultSessionTick      = time.Second
)

// SessionConfig controls the interactive login countdown.
type SessionConfig struct {
	// Countdown is the number of ticks a login may take before it times out.
	Countdown int           `env:"SESSION_COUNTDOWN" envDefault:"60"`
	Tick      time.Duration `env:"SESSION_TICK"      envDefault:"1s"`
}

// Sanitize restores defaults for non-positive values.
func (c *SessionConfig) Sanitize() {
	if c.Countdown <= 0 {
		c.Countdown = defaultSessionCountdown
	}
	if c.Tick <= 0 {
		c.Tick = defaultSessionTick
	}
}

// Budget is the wall-clock time a login may take.
func (c SessionConfig) Budget() time.Duration {
	return time.Duration(c.Countdown) * c.Tick
}
