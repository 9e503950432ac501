package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sudipjangam/tasty-bite-pos/models"
	"github.com/sudipjangam/tasty-bite-pos/pos"
)

const catalogSearchLimit = 25

// CatalogService answers add-item searches from the menu tables. Read-only.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// SearchCatalog matches available menu items by name. An empty query lists
// the first page of the catalog.
func (s *CatalogService) SearchCatalog(ctx context.Context, query string) ([]pos.CatalogItem, error) {
	var menus []models.Menu
	q := s.db.WithContext(ctx).
		Preload("Category").
		Where("available = ?", true).
		Order("name asc").
		Limit(catalogSearchLimit)
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}
	if err := q.Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}

	items := make([]pos.CatalogItem, 0, len(menus))
	for _, m := range menus {
		items = append(items, pos.CatalogItem{
			ID:       m.ID,
			Name:     m.Name,
			Price:    m.Price,
			Category: m.Category.Name,
		})
	}
	return items, nil
}

// GetCatalogItem loads one available menu item for an add-to-cart call.
func (s *CatalogService) GetCatalogItem(ctx context.Context, menuID uint) (*pos.CatalogItem, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("available = ?", true).
		First(&menu, menuID).Error
	if err != nil {
		return nil, err
	}
	return &pos.CatalogItem{
		ID:       menu.ID,
		Name:     menu.Name,
		Price:    menu.Price,
		Category: menu.Category.Name,
	}, nil
}
