package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"boltstore/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// APIImporter pulls the product listing from a fakestore-style JSON
// API and inserts/updates local products.
type APIImporter struct {
	baseURL string
	client  *http.Client
	repo    ProductWriter
}

func NewAPIImporter(baseURL string, client *http.Client, repo ProductWriter) *APIImporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &APIImporter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		repo:    repo,
	}
}

// apiProduct mirrors the remote listing's wire shape. Remote ids are
// numeric; they become opaque string ids locally.
type apiProduct struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Image       string      `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

// Run fetches all remote products and upserts them, returning how many
// were imported. Rows missing a title or id are rejected rather than
// silently skipped.
func (i *APIImporter) Run(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.baseURL+"/products", nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	resp, err := i.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var rows []apiProduct
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, fmt.Errorf("decode products: %w", err)
	}

	imported := 0
	for _, row := range rows {
		p, err := productFromRow(row)
		if err != nil {
			return imported, err
		}
		if _, err := i.repo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.ID, err)
		}
		imported++
	}
	return imported, nil
}

func productFromRow(row apiProduct) (domain.Product, error) {
	id := strings.TrimSpace(row.ID.String())
	if id == "" {
		return domain.Product{}, fmt.Errorf("product row missing id (title %q)", row.Title)
	}
	title := strings.TrimSpace(row.Title)
	if title == "" {
		return domain.Product{}, fmt.Errorf("product row %s missing title", id)
	}
	price := row.Price
	if price < 0 {
		price = 0
	}
	return domain.Product{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(row.Description),
		Category:    strings.TrimSpace(row.Category),
		Price:       price,
		ImageRef:    strings.TrimSpace(row.Image),
		RatingRate:  row.Rating.Rate,
		RatingCount: row.Rating.Count,
	}, nil
}
