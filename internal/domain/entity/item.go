package entity

import "time"

// Item is a catalog entry. Price is in integer minor currency units.
type Item struct {
	ID          string
	Title       string
	Description string
	Price       int64
	Image       string
	LargeImage  string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
