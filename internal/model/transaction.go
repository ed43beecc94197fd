package model

import "time"

const (
	TransactionEarn     = "earn"
	TransactionSpend    = "spend"
	TransactionBonus    = "bonus"
	TransactionReferral = "referral"
	TransactionAdmin    = "admin"
)

type Transaction struct {
	ID           int64
	UserID       int64
	Amount       int
	Type         string
	Description  string
	BalanceAfter int
	CreatedAt    time.Time
}
