package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"boltstore/internal/domain"
)

type recordingWriter struct {
	products []domain.Product
}

func (w *recordingWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	w.products = append(w.products, p)
	return &p, nil
}

const listingJSON = `[
  {"id":1,"title":"Bolt Tee","price":19.99,"description":"soft","category":"Apparel","image":"tee.png","rating":{"rate":4.5,"count":120}},
  {"id":2,"title":"Storm Mug","price":8.5,"category":"Home","image":"mug.png","rating":{"rate":3.9,"count":40}}
]`

func TestRunImportsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingJSON))
	}))
	defer srv.Close()

	writer := &recordingWriter{}
	imp := NewAPIImporter(srv.URL, srv.Client(), writer)

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imports, got %d", n)
	}

	first := writer.products[0]
	if first.ID != "1" {
		t.Fatalf("expected numeric id mapped to string, got %q", first.ID)
	}
	if first.Title != "Bolt Tee" || first.Category != "Apparel" || first.RatingCount != 120 {
		t.Fatalf("unexpected product %+v", first)
	}
}

func TestRunRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	imp := NewAPIImporter(srv.URL, srv.Client(), &recordingWriter{})
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestRunRejectsRowMissingTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":7,"title":"  ","price":1}]`))
	}))
	defer srv.Close()

	writer := &recordingWriter{}
	imp := NewAPIImporter(srv.URL, srv.Client(), writer)
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for row without title")
	}
	if len(writer.products) != 0 {
		t.Fatalf("expected no upserts, got %d", len(writer.products))
	}
}

func TestProductFromRowClampsNegativePrice(t *testing.T) {
	row := apiProduct{ID: "9", Title: "Odd", Price: -3}
	p, err := productFromRow(row)
	if err != nil {
		t.Fatalf("productFromRow: %v", err)
	}
	if p.Price != 0 {
		t.Fatalf("expected price clamped to 0, got %v", p.Price)
	}
}
