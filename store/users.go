package store

import (
	"context"

	"coffeeshop-api/models"

	"gorm.io/gorm"
)

type gormUserStore struct {
	db *gorm.DB
}

// NewUserStore returns a UserStore backed by the given gorm handle.
func NewUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) Create(ctx context.Context, user *models.User) error {
	return classify(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, classify(err)
	}
	return &user, nil
}

func (s *gormUserStore) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return users, nil
}

func (s *gormUserStore) Update(ctx context.Context, user *models.User) error {
	return classify(s.db.WithContext(ctx).Save(user).Error)
}

func (s *gormUserStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
