package entity

import "time"

// Order is created exactly once per successful charge and is immutable
// afterwards. Total is in integer minor currency units.
type Order struct {
	ID        string
	UserID    string
	Total     int64
	ChargeID  string
	Items     []OrderItem
	CreatedAt time.Time
}

// OrderItem is a frozen snapshot of an Item's display fields plus quantity
// at purchase time. It holds no reference to the live Item, so later edits
// or deletion never alter historical orders.
type OrderItem struct {
	ID          string
	Title       string
	Description string
	Price       int64
	Image       string
	LargeImage  string
	Quantity    int
}
