// Package claimctl drives the daily-bonus claim workflow on the client
// side: it decides claim eligibility from server-reported state, formats
// the cooldown countdown and submits claims. The server stays the source
// of truth; nothing here is persisted locally.
package claimctl

import (
	"fmt"
	"time"
)

// Cooldown is the minimum gap the server enforces between daily claims.
const Cooldown = 24 * time.Hour

type Mode int

const (
	ModeUninitialized Mode = iota
	ModeClaimable
	ModeCooldown
)

func (m Mode) String() string {
	switch m {
	case ModeClaimable:
		return "claimable"
	case ModeCooldown:
		return "cooldown"
	default:
		return "uninitialized"
	}
}

// ClaimState is the client's copy of the server-owned claim fields.
// LastClaimUnixMilli of 0 means the user has never claimed.
type ClaimState struct {
	LastClaimUnixMilli int64
	Streak             int
}

type Countdown struct {
	Hours   int
	Minutes int
	Seconds int
}

func (c Countdown) String() string {
	return fmt.Sprintf("%dh %dm %ds", c.Hours, c.Minutes, c.Seconds)
}

// Evaluate reports whether the bonus is claimable at now and, when it is
// not, the time left until it is. It is pure: equal inputs always give
// equal outputs. Eligibility is re-derived from the claim timestamp on
// every call, never counted down locally, so a tick that lands past the
// cooldown boundary flips straight to ModeClaimable.
func Evaluate(now time.Time, state ClaimState) (Mode, Countdown) {
	if state.LastClaimUnixMilli == 0 {
		return ModeClaimable, Countdown{}
	}

	elapsed := now.UnixMilli() - state.LastClaimUnixMilli
	if elapsed >= Cooldown.Milliseconds() {
		return ModeClaimable, Countdown{}
	}

	remaining := Cooldown.Milliseconds() - elapsed
	return ModeCooldown, Countdown{
		Hours:   int(remaining / 3_600_000),
		Minutes: int(remaining % 3_600_000 / 60_000),
		Seconds: int(remaining % 60_000 / 1_000),
	}
}
