package domain

// CartLine is one product's presence in a cart. ProductID acts as the
// line's key and is opaque: ids imported from remote catalogs are
// numeric strings, seeded ids are UUIDs.
type CartLine struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef"`
	Quantity  int     `json:"quantity"`
}
