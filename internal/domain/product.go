package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageRef    string    `json:"image"`
	RatingRate  float64   `json:"ratingRate,omitempty"`
	RatingCount int       `json:"ratingCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
