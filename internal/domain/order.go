package domain

import "time"

// OrderStatus values an order can carry. Orders are append-only from
// this service's perspective; "placed" is the only status it writes.
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// OrderLine is a defensive snapshot of a CartLine taken at submission
// time. Fields are defaulted when the upstream cart held a partially
// populated line from an older persisted format.
type OrderLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef"`
	Quantity  int     `json:"quantity"`
}

// Order is an immutable record of a completed checkout. CreatedAt is
// assigned by the order repository, never taken from the client.
type Order struct {
	ID         string      `json:"id"`
	OwnerID    string      `json:"ownerId"`
	Lines      []OrderLine `json:"lines"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}
