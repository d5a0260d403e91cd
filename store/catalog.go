package store

import (
	"context"

	"coffeeshop-api/models"

	"gorm.io/gorm"
)

type gormCatalogStore struct {
	db *gorm.DB
}

// NewCatalogStore returns a CatalogStore backed by the given gorm handle.
func NewCatalogStore(db *gorm.DB) CatalogStore {
	return &gormCatalogStore{db: db}
}

func (s *gormCatalogStore) CreateCategory(ctx context.Context, cat *models.Category) error {
	return classify(s.db.WithContext(ctx).Create(cat).Error)
}

func (s *gormCatalogStore) FindCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := s.db.WithContext(ctx).Preload("MenuItems").First(&cat, id).Error; err != nil {
		return nil, classify(err)
	}
	return &cat, nil
}

func (s *gormCatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.WithContext(ctx).Preload("MenuItems").Order("id").Find(&cats).Error; err != nil {
		return nil, classify(err)
	}
	return cats, nil
}

func (s *gormCatalogStore) UpdateCategory(ctx context.Context, cat *models.Category) error {
	return classify(s.db.WithContext(ctx).Save(cat).Error)
}

func (s *gormCatalogStore) DeleteCategory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormCatalogStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return classify(s.db.WithContext(ctx).Create(item).Error)
}

func (s *gormCatalogStore) FindMenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, classify(err)
	}
	return &item, nil
}

func (s *gormCatalogStore) ListMenuItems(ctx context.Context, availableOnly bool) ([]models.MenuItem, error) {
	query := s.db.WithContext(ctx).Preload("Category").Order("id")
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

// FindMenuItemsByIDs fetches all requested items in one query. Ids that do
// not exist are simply absent from the result; callers decide what that means.
func (s *gormCatalogStore) FindMenuItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, classify(err)
	}
	return items, nil
}

func (s *gormCatalogStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return classify(s.db.WithContext(ctx).Save(item).Error)
}

// SoftDeleteMenuItem retires an item by marking it unavailable. The row stays
// so historical order lines keep their reference.
func (s *gormCatalogStore) SoftDeleteMenuItem(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.MenuItem{}).
		Where("id = ?", id).
		Update("is_available", false)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
