// Package ordering implements order placement: cart validation, price
// computation from the current catalog, and atomic persistence.
package ordering

import (
	"context"
	"errors"
	"fmt"

	"coffeeshop-api/models"
	"coffeeshop-api/statemachine"
	"coffeeshop-api/store"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart is returned when an order is placed with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity is returned when a line quantity is not a positive
	// integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrInvalidTransition is returned when a status change is not permitted
	// by the state machine for the acting role.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// UnavailableError rejects a cart referencing items that are missing or no
// longer available. The whole cart fails: no partial orders. Available lists
// what could currently be ordered instead, for caller convenience.
type UnavailableError struct {
	Missing   []uint
	Available []models.MenuItem
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("cart references %d unavailable or unknown menu items", len(e.Missing))
}

// CartLine is one requested (menu item, quantity) pair. Clients never supply
// prices; the unit price always comes from the catalog at order time.
type CartLine struct {
	MenuItemID uint `json:"menuitem_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// Service prices and persists orders.
type Service struct {
	catalog store.CatalogStore
	orders  store.OrderStore
}

func NewService(catalog store.CatalogStore, orders store.OrderStore) *Service {
	return &Service{catalog: catalog, orders: orders}
}

// PlaceOrder validates the cart against the current catalog, computes the
// total in decimal arithmetic, and persists the order with all of its lines
// in one transaction. The cart is all-or-nothing: any missing or unavailable
// item rejects the whole order.
func (s *Service) PlaceOrder(ctx context.Context, purchaserID uint, cart []CartLine) (*models.Order, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: got %d for item %d", ErrInvalidQuantity, line.Quantity, line.MenuItemID)
		}
	}

	// One batched lookup for every referenced item. Availability is read at
	// request time, never from a cached snapshot.
	ids := make([]uint, 0, len(cart))
	seen := make(map[uint]bool, len(cart))
	for _, line := range cart {
		if !seen[line.MenuItemID] {
			seen[line.MenuItemID] = true
			ids = append(ids, line.MenuItemID)
		}
	}
	found, err := s.catalog.FindMenuItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.MenuItem, len(found))
	for _, item := range found {
		if item.IsAvailable {
			byID[item.ID] = item
		}
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		available, err := s.catalog.ListMenuItems(ctx, true)
		if err != nil {
			return nil, err
		}
		return nil, &UnavailableError{Missing: missing, Available: available}
	}

	// Snapshot unit prices and accumulate the total in decimal; round to the
	// currency's two minor-unit places only at the end.
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(cart))
	for _, line := range cart {
		item := byID[line.MenuItemID]
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, models.OrderItem{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			UnitPrice:  item.Price,
		})
	}

	order := &models.Order{
		UserID:     purchaserID,
		Status:     models.StatusPending,
		TotalPrice: total.Round(2),
		Items:      items,
	}
	if err := s.orders.CreateAtomic(ctx, order); err != nil {
		return nil, err
	}

	// Re-read for a fully hydrated response (resolved menu item per line).
	return s.orders.FindByID(ctx, order.ID)
}

// TransitionStatus moves an order to the next lifecycle state if the state
// machine permits the acting role to do so.
func (s *Service) TransitionStatus(ctx context.Context, orderID uint, next models.OrderStatus, role models.Role) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransition(order.Status, next, role); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}
