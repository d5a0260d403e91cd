package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle states of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusInProgress OrderStatus = "in-progress"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Order struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null"`
	User       *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status     OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Items      []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	OrderDate  time.Time       `json:"order_date" gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderItem records the unit price as it was at order time. The snapshot is a
// copy, not a live reference: later menu price changes must not alter it.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null"`
	MenuItem   *MenuItem       `json:"menu_item,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
}
