package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"coffeeshop-api/auth"
	"coffeeshop-api/handlers"
	"coffeeshop-api/models"
	"coffeeshop-api/ordering"
	"coffeeshop-api/routes"
	"coffeeshop-api/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	users  store.UserStore
	orders store.OrderStore

	tokens  map[string]string
	userIDs map[string]uint

	espresso  models.MenuItem
	croissant models.MenuItem
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	users := store.NewUserStore(db)
	catalog := store.NewCatalogStore(db)
	orders := store.NewOrderStore(db)
	authSvc := auth.NewService(users, []byte("test-secret"), 15*time.Minute)
	h := handlers.New(users, catalog, orders, authSvc, ordering.NewService(catalog, orders))

	r := gin.New()
	routes.SetupRoutes(r, h, authSvc)

	ts := &testServer{router: r, users: users, orders: orders, tokens: map[string]string{}, userIDs: map[string]uint{}}
	ctx := context.Background()

	for _, role := range []models.Role{models.RoleCustomer, models.RoleBarista, models.RoleAdmin} {
		name := string(role)
		user, err := authSvc.Signup(ctx, name, name+"@example.com", "s3cretpw", role)
		require.NoError(t, err)
		token, err := authSvc.IssueToken(user)
		require.NoError(t, err)
		ts.tokens[name] = token
		ts.userIDs[name] = user.ID
	}
	// a second customer for cross-ownership checks
	other, err := authSvc.Signup(ctx, "customer2", "customer2@example.com", "s3cretpw", models.RoleCustomer)
	require.NoError(t, err)
	token, err := authSvc.IssueToken(other)
	require.NoError(t, err)
	ts.tokens["customer2"] = token
	ts.userIDs["customer2"] = other.ID

	cat := &models.Category{Name: "Hot Coffee"}
	require.NoError(t, catalog.CreateCategory(ctx, cat))
	espresso := &models.MenuItem{Name: "Espresso", Price: decimal.RequireFromString("3.50"), CategoryID: cat.ID, IsAvailable: true}
	require.NoError(t, catalog.CreateMenuItem(ctx, espresso))
	croissant := &models.MenuItem{Name: "Croissant", Price: decimal.RequireFromString("3.50"), CategoryID: cat.ID, IsAvailable: true}
	require.NoError(t, catalog.CreateMenuItem(ctx, croissant))
	ts.espresso = *espresso
	ts.croissant = *croissant

	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) placeOrder(t *testing.T, token string) models.Order {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"items": []gin.H{
			{"menuitem_id": ts.espresso.ID, "quantity": 2},
			{"menuitem_id": ts.croissant.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Order
}

func TestSignupDuplicateConflict(t *testing.T) {
	ts := newServer(t)

	w := ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": "newbie", "email": "newbie@example.com", "password": "s3cretpw",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// same email again
	w = ts.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"username": "newbie2", "email": "newbie@example.com", "password": "otherpw",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// pre-existing record unchanged: original password still logs in
	w = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "newbie@example.com", "password": "s3cretpw",
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailureShape(t *testing.T) {
	ts := newServer(t)

	wrongPw := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "customer@example.com", "password": "wrong",
	})
	noUser := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ghost@example.com", "password": "s3cretpw",
	})

	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	require.Equal(t, http.StatusUnauthorized, noUser.Code)
	require.JSONEq(t, wrongPw.Body.String(), noUser.Body.String(),
		"wrong password and unknown email must be indistinguishable")
}

func TestPlaceOrderTotal(t *testing.T) {
	ts := newServer(t)

	order := ts.placeOrder(t, ts.tokens["customer"])
	require.True(t, order.TotalPrice.Equal(decimal.RequireFromString("10.50")),
		"expected 10.50, got %s", order.TotalPrice)
	require.Equal(t, models.StatusPending, order.Status)
	require.Equal(t, ts.userIDs["customer"], order.UserID)
	require.Len(t, order.Items, 2)
}

func TestPlaceOrderValidation(t *testing.T) {
	ts := newServer(t)

	// no token
	w := ts.do(t, http.MethodPost, "/api/orders", "", gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// empty cart
	w = ts.do(t, http.MethodPost, "/api/orders", ts.tokens["customer"], gin.H{"items": []gin.H{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// unavailable item: whole cart rejected with structured detail
	w = ts.do(t, http.MethodPost, "/api/orders", ts.tokens["customer"], gin.H{
		"items": []gin.H{
			{"menuitem_id": ts.espresso.ID, "quantity": 1},
			{"menuitem_id": 9999, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var detail struct {
		Missing   []uint `json:"missing"`
		Available []uint `json:"available"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Equal(t, []uint{9999}, detail.Missing)
	require.Contains(t, detail.Available, ts.espresso.ID)

	// nothing was persisted
	orders, err := ts.orders.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestOrderOwnership(t *testing.T) {
	ts := newServer(t)
	order := ts.placeOrder(t, ts.tokens["customer"])
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	// owner reads it
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, path, ts.tokens["customer"], nil).Code)
	// staff read any order
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, path, ts.tokens["barista"], nil).Code)
	// an unrelated customer gets 403, not 404
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, path, ts.tokens["customer2"], nil).Code)
	// a missing order is 404 even for its would-be owner
	require.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/orders/9999", ts.tokens["customer"], nil).Code)
}

func TestListOrdersScoping(t *testing.T) {
	ts := newServer(t)
	ts.placeOrder(t, ts.tokens["customer"])
	ts.placeOrder(t, ts.tokens["customer2"])

	var resp struct {
		Count  int            `json:"count"`
		Orders []models.Order `json:"orders"`
	}

	w := ts.do(t, http.MethodGet, "/api/orders", ts.tokens["customer"], nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	require.Equal(t, ts.userIDs["customer"], resp.Orders[0].UserID)

	w = ts.do(t, http.MethodGet, "/api/orders", ts.tokens["barista"], nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
}

func TestOrderStatusRoleGating(t *testing.T) {
	ts := newServer(t)
	order := ts.placeOrder(t, ts.tokens["customer"])
	path := fmt.Sprintf("/api/orders/%d/status", order.ID)

	// customers may not transition status, not even on their own order
	w := ts.do(t, http.MethodPut, path, ts.tokens["customer"], gin.H{"status": "in-progress"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPut, path, ts.tokens["barista"], gin.H{"status": "in-progress"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// illegal jump is a 422 with the valid next states listed
	w = ts.do(t, http.MethodPut, path, ts.tokens["barista"], gin.H{"status": "pending"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var detail struct {
		ValidNextStates []models.OrderStatus `json:"valid_next_states"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Contains(t, detail.ValidNextStates, models.StatusCompleted)
}

func TestOrderDelete(t *testing.T) {
	ts := newServer(t)
	order := ts.placeOrder(t, ts.tokens["customer"])
	path := fmt.Sprintf("/api/orders/%d", order.ID)

	// another customer cannot delete it
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodDelete, path, ts.tokens["customer2"], nil).Code)
	// the owner can
	require.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, path, ts.tokens["customer"], nil).Code)
	require.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, path, ts.tokens["barista"], nil).Code)
}

func TestMenuSoftDelete(t *testing.T) {
	ts := newServer(t)
	path := fmt.Sprintf("/api/menu/items/%d", ts.espresso.ID)

	// baristas manage items but only admins retire them
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodDelete, path, ts.tokens["barista"], nil).Code)
	require.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, path, ts.tokens["admin"], nil).Code)

	// still present, but flagged unavailable
	w := ts.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Item models.MenuItem `json:"item"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Item.IsAvailable)

	// and absent from the available listing
	w = ts.do(t, http.MethodGet, "/api/menu/items?available=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Items []models.MenuItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	for _, item := range list.Items {
		require.NotEqual(t, ts.espresso.ID, item.ID)
	}
}

func TestUserRoutesAuthorization(t *testing.T) {
	ts := newServer(t)

	// listing users is staff-only
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, "/api/users", ts.tokens["customer"], nil).Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/users", ts.tokens["barista"], nil).Code)

	// a customer can read their own record but not someone else's
	own := fmt.Sprintf("/api/users/%d", ts.userIDs["customer"])
	other := fmt.Sprintf("/api/users/%d", ts.userIDs["customer2"])
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, own, ts.tokens["customer"], nil).Code)
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodGet, other, ts.tokens["customer"], nil).Code)

	// only admins may change a role
	w := ts.do(t, http.MethodPut, own, ts.tokens["customer"], gin.H{"role": "admin"})
	require.Equal(t, http.StatusForbidden, w.Code)
	w = ts.do(t, http.MethodPut, own, ts.tokens["admin"], gin.H{"role": "barista"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// deleting users is admin-only
	require.Equal(t, http.StatusForbidden, ts.do(t, http.MethodDelete, other, ts.tokens["barista"], nil).Code)
	require.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, other, ts.tokens["admin"], nil).Code)

	// the deleted user's token no longer authenticates
	require.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/orders", ts.tokens["customer2"], nil).Code)
}
