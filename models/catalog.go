package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"uniqueIndex;not null"`
	Description string     `json:"description"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MenuItem is never hard-deleted: retiring an item flips IsAvailable so that
// historical order lines keep a valid reference.
type MenuItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"uniqueIndex;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `json:"category_id" gorm:"not null"`
	Category    *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	IsAvailable bool            `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
