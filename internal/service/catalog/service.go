// Package catalog serves the read-only product listing the storefront
// renders. The listing comes from a Source and is cached with a TTL;
// the rest of the system treats it as an external black box.
package catalog

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"boltstore/internal/domain"
	"boltstore/internal/projector"
)

// Source supplies the product listing and its categories.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service is a read-through cache over a Source. It owns no retry
// logic: a failed refresh surfaces to the caller, who renders an error
// state.
type Service struct {
	source Source
	ttl    time.Duration
	logger *log.Logger

	mu         sync.Mutex
	products   []domain.Product
	categories []string
	fetchedAt  time.Time
}

func New(source Source, ttl time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{source: source, ttl: ttl, logger: logger}
}

// Products returns the catalog entries, filtered by category when
// selectedCategory is non-empty.
func (s *Service) Products(ctx context.Context, selectedCategory string) ([]domain.Product, error) {
	products, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return projector.FilteredProducts(products, selectedCategory), nil
}

// Categories returns the distinct category values of the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh() {
		return append([]string(nil), s.categories...), nil
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return append([]string(nil), s.categories...), nil
}

func (s *Service) load(ctx context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh() {
		return s.products, nil
	}
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.products, nil
}

// refresh must be called with the lock held.
func (s *Service) refresh(ctx context.Context) error {
	products, err := s.source.ListProducts(ctx)
	if err != nil {
		s.logger.Printf("catalog: list products error=%v", err)
		return err
	}
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		s.logger.Printf("catalog: list categories error=%v", err)
		return err
	}
	if len(categories) == 0 {
		categories = projector.AvailableCategories(products)
	}
	s.products = products
	s.categories = categories
	s.fetchedAt = time.Now()
	return nil
}

// Invalidate drops the cached listing so the next read refetches.
// Called after catalog writes that must be visible immediately.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}

func (s *Service) fresh() bool {
	return !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl
}

// RepoSource adapts a product repository into a Source.
type RepoSource struct {
	Repo productLister
}

type productLister interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

func (s RepoSource) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.Repo.ListAll(ctx)
}

func (s RepoSource) ListCategories(ctx context.Context) ([]string, error) {
	return s.Repo.ListCategories(ctx)
}
