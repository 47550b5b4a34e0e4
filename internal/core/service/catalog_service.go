package service

import (
	"context"
	"fmt"
	"strings"

	"little-lemon/internal/core/domain"
	"little-lemon/internal/port"
)

type CatalogService struct {
	catalog port.CatalogRepository
}

func NewCatalogService(catalog port.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.catalog.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, title string) (*domain.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return s.catalog.CreateCategory(ctx, title)
}

func (s *CatalogService) ListMenuItems(ctx context.Context, f domain.MenuItemFilter) ([]domain.MenuItem, error) {
	switch f.Ordering {
	case "", "price", "-price", "title", "-title":
	default:
		return nil, fmt.Errorf("%w: unsupported ordering %q", domain.ErrInvalidInput, f.Ordering)
	}
	return s.catalog.ListMenuItems(ctx, f)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return s.catalog.GetMenuItem(ctx, id)
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetCategory(ctx, item.CategoryID); err != nil {
		return nil, fmt.Errorf("category %d: %w", item.CategoryID, err)
	}
	return s.catalog.CreateMenuItem(ctx, item)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetMenuItem(ctx, item.ID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetCategory(ctx, item.CategoryID); err != nil {
		return nil, fmt.Errorf("category %d: %w", item.CategoryID, err)
	}
	if err := s.catalog.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.catalog.DeleteMenuItem(ctx, id)
}

func validateMenuItem(item domain.MenuItem) error {
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}
	if item.CategoryID == 0 {
		return fmt.Errorf("%w: category_id is required", domain.ErrInvalidInput)
	}
	return nil
}
