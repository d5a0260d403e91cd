// Package seed populates a fresh database with sample accounts, a starter
// menu, and one example order. Running it twice is harmless: existing rows
// are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"coffeeshop-api/models"
	"coffeeshop-api/store"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func Run(ctx context.Context, users store.UserStore, catalog store.CatalogStore, orders store.OrderStore) error {
	if _, err := ensureUser(ctx, users, "admin", "admin@brewhaven.com", "AdminPass123!", models.RoleAdmin); err != nil {
		return err
	}
	if _, err := ensureUser(ctx, users, "barista1", "barista@brewhaven.com", "BaristaPass123!", models.RoleBarista); err != nil {
		return err
	}
	customer, err := ensureUser(ctx, users, "customer1", "customer@brewhaven.com", "CustomerPass123!", models.RoleCustomer)
	if err != nil {
		return err
	}

	hotCoffee, err := ensureCategory(ctx, catalog, "Hot Coffee", "Warm handcrafted coffees")
	if err != nil {
		return err
	}
	pastries, err := ensureCategory(ctx, catalog, "Pastries", "Fresh baked goods")
	if err != nil {
		return err
	}

	espresso, err := ensureMenuItem(ctx, catalog, "Espresso", "Strong coffee", "3.50", hotCoffee.ID)
	if err != nil {
		return err
	}
	if _, err := ensureMenuItem(ctx, catalog, "Latte", "Espresso with steamed milk", "4.25", hotCoffee.ID); err != nil {
		return err
	}
	croissant, err := ensureMenuItem(ctx, catalog, "Croissant", "Buttery croissant", "3.50", pastries.ID)
	if err != nil {
		return err
	}
	if _, err := ensureMenuItem(ctx, catalog, "Blueberry Muffin", "Baked fresh daily", "3.00", pastries.ID); err != nil {
		return err
	}

	// One sample order: 2x espresso + 1x croissant = 10.50
	existing, err := orders.ListByUser(ctx, customer.ID)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		order := &models.Order{
			UserID:     customer.ID,
			Status:     models.StatusPending,
			TotalPrice: decimal.RequireFromString("10.50"),
			Items: []models.OrderItem{
				{MenuItemID: espresso.ID, Quantity: 2, UnitPrice: espresso.Price},
				{MenuItemID: croissant.ID, Quantity: 1, UnitPrice: croissant.Price},
			},
		}
		if err := orders.CreateAtomic(ctx, order); err != nil {
			return fmt.Errorf("seed sample order: %w", err)
		}
	}

	log.Println("Seed complete")
	return nil
}

func ensureUser(ctx context.Context, users store.UserStore, username, email, password string, role models.Role) (*models.User, error) {
	if existing, err := users.FindByEmail(ctx, email); err == nil {
		return existing, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	user := &models.User{Username: username, Email: email, PasswordHash: string(hash), Role: role}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("seed user %s: %w", username, err)
	}
	return user, nil
}

func ensureCategory(ctx context.Context, catalog store.CatalogStore, name, description string) (*models.Category, error) {
	cats, err := catalog.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cats {
		if cats[i].Name == name {
			return &cats[i], nil
		}
	}
	cat := &models.Category{Name: name, Description: description}
	if err := catalog.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("seed category %s: %w", name, err)
	}
	return cat, nil
}

func ensureMenuItem(ctx context.Context, catalog store.CatalogStore, name, description, price string, categoryID uint) (*models.MenuItem, error) {
	items, err := catalog.ListMenuItems(ctx, false)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Name == name {
			return &items[i], nil
		}
	}
	item := &models.MenuItem{
		Name:        name,
		Description: description,
		Price:       decimal.RequireFromString(price),
		CategoryID:  categoryID,
		IsAvailable: true,
	}
	if err := catalog.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("seed menu item %s: %w", name, err)
	}
	return item, nil
}
