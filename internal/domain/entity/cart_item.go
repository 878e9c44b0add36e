package entity

import "time"

// CartItem is one line of a user's cart. At most one row exists per
// (user, item) pair; repeated adds increment Quantity instead.
type CartItem struct {
	ID        string
	UserID    string
	ItemID    string
	Quantity  int
	Item      *Item
	CreatedAt time.Time
	UpdatedAt time.Time
}
