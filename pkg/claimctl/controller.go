package claimctl

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const tickInterval = time.Second

type Profile struct {
	Balance        int
	DailyStreak    int
	LastDailyClaim int64
}

type ClaimResult struct {
	Message    string
	Amount     int
	NewBalance int
	Streak     int
}

type ProfileFetcher interface {
	FetchProfile(ctx context.Context) (*Profile, error)
}

type ClaimSubmitter interface {
	SubmitClaim(ctx context.Context) (*ClaimResult, error)
}

// Snapshot is what the rendering layer gets on every change: the current
// mode, the countdown label when cooling down, and the display fields.
type Snapshot struct {
	Mode    Mode
	Label   string
	Balance int
	Streak  int
}

// Controller owns one ClaimState for the lifetime of one view. It
// hydrates from the ProfileFetcher, re-evaluates eligibility once a
// second while in cooldown and stops ticking once claimable. All state
// transitions come from server responses; Claim never advances the
// streak or balance on its own.
type Controller struct {
	fetcher   ProfileFetcher
	submitter ClaimSubmitter
	onChange  func(Snapshot)
	log       *zap.Logger

	// now is swapped out in tests.
	now func() time.Time

	mu       sync.Mutex
	state    ClaimState
	balance  int
	hydrated bool

	wake chan struct{}
}

func NewController(fetcher ProfileFetcher, submitter ClaimSubmitter, onChange func(Snapshot), log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		fetcher:   fetcher,
		submitter: submitter,
		onChange:  onChange,
		log:       log,
		now:       time.Now,
		wake:      make(chan struct{}, 1),
	}
}

// Run hydrates the controller and then serves snapshots until ctx is
// cancelled. Cancelling ctx is the disposal path: pending ticks are
// dropped and no snapshot is emitted afterwards.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return err
	}

	for {
		mode := c.emit()

		if mode != ModeCooldown {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.wake:
			}
			continue
		}

		timer := time.NewTimer(tickInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-c.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Refresh re-hydrates state from the profile endpoint. The fetched state
// replaces the local copy wholesale.
func (c *Controller) Refresh(ctx context.Context) error {
	profile, err := c.fetcher.FetchProfile(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.state = ClaimState{
		LastClaimUnixMilli: profile.LastDailyClaim,
		Streak:             profile.DailyStreak,
	}
	c.balance = profile.Balance
	c.hydrated = true
	c.mu.Unlock()

	c.signalWake()
	return nil
}

// Claim submits one claim. On success the server's streak and balance
// replace local state and the claim time re-anchors to now, so the next
// evaluation shows a full cooldown. On rejection local state is left
// alone and re-synced from the server; the countdown keeps running
// either way.
func (c *Controller) Claim(ctx context.Context) (*ClaimResult, error) {
	result, err := c.submitter.SubmitClaim(ctx)
	if err != nil {
		c.log.Info("claim failed, re-syncing with server", zap.Error(err))
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			c.log.Warn("failed to re-sync after rejected claim", zap.Error(refreshErr))
			c.signalWake()
		}
		return nil, err
	}

	c.mu.Lock()
	c.state = ClaimState{
		LastClaimUnixMilli: c.now().UnixMilli(),
		Streak:             result.Streak,
	}
	c.balance = result.NewBalance
	c.hydrated = true
	c.mu.Unlock()

	c.signalWake()
	return result, nil
}

// Snapshot evaluates the current state without side effects. Until the
// first server response lands it reports ModeUninitialized: a zero local
// state is "no data yet", not the server-reported "never claimed".
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	state := c.state
	balance := c.balance
	hydrated := c.hydrated
	c.mu.Unlock()

	if !hydrated {
		return Snapshot{Mode: ModeUninitialized}
	}

	mode, countdown := Evaluate(c.now(), state)

	snap := Snapshot{
		Mode:    mode,
		Balance: balance,
		Streak:  state.Streak,
	}
	if mode == ModeCooldown {
		snap.Label = countdown.String()
	}
	return snap
}

func (c *Controller) emit() Mode {
	snap := c.Snapshot()
	if c.onChange != nil {
		c.onChange(snap)
	}
	return snap.Mode
}

func (c *Controller) signalWake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}
