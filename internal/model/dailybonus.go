package model

import "time"

type DailyBonusStatus struct {
	UserID              int64
	LastClaimedAt       *time.Time
	NextClaimAvailable  *time.Time
	IsAvailable         bool
	HasNeverBeenClaimed bool
	Streak              int
}

type DailyBonusClaim struct {
	Amount     int
	Streak     int
	NewBalance int
}
