// Package store persists users, the menu catalog, and orders behind small
// interfaces so that handlers and services never touch gorm directly.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coffeeshop-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

// CatalogStore persists categories and menu items.
type CatalogStore interface {
	CreateCategory(ctx context.Context, cat *models.Category) error
	FindCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, cat *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	FindMenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, availableOnly bool) ([]models.MenuItem, error)
	FindMenuItemsByIDs(ctx context.Context, ids []uint) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	SoftDeleteMenuItem(ctx context.Context, id uint) error
}

// OrderStore persists orders and their line items.
type OrderStore interface {
	// CreateAtomic writes the order and all of its items in one transaction.
	CreateAtomic(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error
	Delete(ctx context.Context, id uint) error
	// OwnerOf resolves an order to the id of the user who placed it.
	OwnerOf(ctx context.Context, id uint) (uint, error)
}

// Open connects to the sqlite database at path and migrates the schema.
// Use ":memory:" in tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	log.Println("Database connected and migrated")
	return db, nil
}

// classify maps gorm errors onto the store's error vocabulary. Anything that
// is neither a not-found nor a uniqueness violation surfaces as an opaque
// persistence failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("persistence failure: %w", err)
	}
}
