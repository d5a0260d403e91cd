package store

import (
	"context"

	"coffeeshop-api/models"

	"gorm.io/gorm"
)

type gormOrderStore struct {
	db *gorm.DB
}

// NewOrderStore returns an OrderStore backed by the given gorm handle.
func NewOrderStore(db *gorm.DB) OrderStore {
	return &gormOrderStore{db: db}
}

// CreateAtomic persists the order together with its items. gorm writes the
// parent row and the association rows inside a single transaction, so either
// the whole order exists afterwards or none of it does.
func (s *gormOrderStore) CreateAtomic(ctx context.Context, order *models.Order) error {
	return classify(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}))
}

func (s *gormOrderStore) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		First(&order, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &order, nil
}

func (s *gormOrderStore) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Where("user_id = ?", userID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, classify(err)
	}
	return orders, nil
}

func (s *gormOrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items.MenuItem").
		Preload("User").
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, classify(err)
	}
	return orders, nil
}

func (s *gormOrderStore) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormOrderStore) Delete(ctx context.Context, id uint) error {
	return classify(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
	}))
}

func (s *gormOrderStore) OwnerOf(ctx context.Context, id uint) (uint, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Select("id", "user_id").First(&order, id).Error
	if err != nil {
		return 0, classify(err)
	}
	return order.UserID, nil
}
