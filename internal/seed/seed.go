package seed

import (
	"context"
	"fmt"

	"boltstore/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

var demoProducts = []domain.Product{
	{
		Title:       "Bolt Hoodie",
		Description: "Heavyweight fleece hoodie with the gold bolt across the chest.",
		Category:    "Apparel",
		Price:       49.99,
		ImageRef:    "https://via.placeholder.com/300?text=Bolt+Hoodie",
		RatingRate:  4.6,
		RatingCount: 112,
	},
	{
		Title:       "Bolt Tee",
		Description: "Classic cotton tee, bolt print front and back.",
		Category:    "Apparel",
		Price:       19.99,
		ImageRef:    "https://via.placeholder.com/300?text=Bolt+Tee",
		RatingRate:  4.2,
		RatingCount: 87,
	},
	{
		Title:       "Storm Mug",
		Description: "Ceramic mug, 350ml, dishwasher safe.",
		Category:    "Home",
		Price:       12.50,
		ImageRef:    "https://via.placeholder.com/300?text=Storm+Mug",
		RatingRate:  4.8,
		RatingCount: 203,
	},
	{
		Title:       "Thunder Poster",
		Description: "A2 matte print of a supercell over open plains.",
		Category:    "Home",
		Price:       15.00,
		ImageRef:    "https://via.placeholder.com/300?text=Thunder+Poster",
		RatingRate:  4.1,
		RatingCount: 34,
	},
	{
		Title:       "Bolt Plush",
		Description: "Soft lightning-bolt plush, 40cm.",
		Category:    "Toys",
		Price:       24.99,
		ImageRef:    "https://via.placeholder.com/300?text=Bolt+Plush",
		RatingRate:  4.9,
		RatingCount: 412,
	},
}

// Run inserts the demo catalog, returning how many products were
// written. Existing rows with the same id are updated.
func Run(ctx context.Context, repo ProductWriter) (int, error) {
	for _, p := range demoProducts {
		if _, err := repo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("seed product %q: %w", p.Title, err)
		}
	}
	return len(demoProducts), nil
}
