package model

import "time"

const (
	RoleMember = "MEMBER"
	RolePro    = "PRO"
	RoleAdmin  = "ADMIN"
	RoleOwner  = "OWNER"
)

type User struct {
	ID                int64
	Username          string
	Email             string
	PasswordHash      string
	Role              string
	Balance           int
	DailyStreak       int
	LastDailyClaim    *time.Time
	HasClaimedWelcome bool
	AvatarURL         string
	CreatedAt         time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleOwner
}

type LeaderboardEntry struct {
	Rank      int
	Username  string
	Balance   int
	AvatarURL string
}
