package model

import "time"

type ShopItem struct {
	ID            int64
	Title         string
	Description   string
	Price         int
	Category      string
	Tags          []string
	ImageURL      string
	StockQuantity int
	IsActive      bool
	CreatedAt     time.Time
}

type Purchase struct {
	ID         int64
	UserID     int64
	ItemID     int64
	Quantity   int
	TotalPrice int
	Status     string
	CreatedAt  time.Time
}

type PurchaseResult struct {
	ItemID     int64
	Quantity   int
	TotalPrice int
	NewBalance int
}
