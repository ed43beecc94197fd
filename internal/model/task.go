package model

import "time"

type Task struct {
	ID                   int64
	Title                string
	Description          string
	Type                 string
	Reward               int
	RequiresVerification bool
	IsActive             bool
	CreatedAt            time.Time
}

type TaskCompletion struct {
	TaskID     int64
	Amount     int
	NewBalance int
}
