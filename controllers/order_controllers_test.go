package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/bistro-orders/controllers"
	"github.com/yeremiapane/bistro-orders/middlewares"
	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/store"
)

// setupOrderRouter wires the order endpoints as the given caller,
// including the admin gate on the status route.
func setupOrderRouter(s *store.Store, userID uint, isAdmin bool) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(s)

	auth := router.Group("/api")
	auth.Use(asUser(userID, isAdmin))
	{
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		admin := auth.Group("/")
		admin.Use(middlewares.AdminOnly())
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	}
	return router
}

func seedTestUser(t *testing.T, s *store.Store, username string, isAdmin bool) *models.User {
	user := models.User{Username: username, Password: "hash", Name: username, IsAdmin: isAdmin}
	if err := s.CreateUser(&user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func teaOrderPayload() map[string]interface{} {
	return map[string]interface{}{
		"order_details": map[string]interface{}{
			"customer_name":  "A",
			"customer_phone": "1234567890",
			"order_type":     "pickup",
			"subtotal":       3.0,
			"tax":            0.21,
			"total":          3.21,
		},
		"cart_items": []map[string]interface{}{
			{"menu_item_id": 1, "name": "Tea", "price": 1.5, "quantity": 2},
		},
	}
}

func TestPlaceOrderAndFetchDetail(t *testing.T) {
	s := setupTestStore(t)
	user := seedTestUser(t, s, "alice", false)
	router := setupOrderRouter(s, user.ID, false)

	w := doJSON(t, router, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 3.21, data["total"])
	assert.Equal(t, "new", data["status"])
	// Owner is the caller, regardless of anything in the payload
	assert.Equal(t, float64(user.ID), data["user_id"])
	orderID := int(data["id"].(float64))

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	detail := parseBody(t, w)["data"].(map[string]interface{})
	items := detail["items"].([]interface{})
	assert.Len(t, items, 1)

	var sum float64
	for _, raw := range items {
		item := raw.(map[string]interface{})
		sum += item["price"].(float64) * item["quantity"].(float64)
	}
	assert.Equal(t, 3.0, sum)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	s := setupTestStore(t)
	user := seedTestUser(t, s, "alice", false)
	router := setupOrderRouter(s, user.ID, false)

	payload := teaOrderPayload()
	payload["cart_items"] = []map[string]interface{}{}

	w := doJSON(t, router, "POST", "/api/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart cannot be empty", parseBody(t, w)["message"])
}

func TestPlaceOrderInvalidType(t *testing.T) {
	s := setupTestStore(t)
	user := seedTestUser(t, s, "alice", false)
	router := setupOrderRouter(s, user.ID, false)

	payload := teaOrderPayload()
	payload["order_details"].(map[string]interface{})["order_type"] = "delivery"

	w := doJSON(t, router, "POST", "/api/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderListingScopedByRole(t *testing.T) {
	s := setupTestStore(t)
	alice := seedTestUser(t, s, "alice", false)
	bob := seedTestUser(t, s, "bob", false)
	admin := seedTestUser(t, s, "admin", true)

	aliceRouter := setupOrderRouter(s, alice.ID, false)
	bobRouter := setupOrderRouter(s, bob.ID, false)
	adminRouter := setupOrderRouter(s, admin.ID, true)

	w := doJSON(t, aliceRouter, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, bobRouter, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	// Customers only see their own orders
	w = doJSON(t, aliceRouter, "GET", "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	orders := parseBody(t, w)["data"].([]interface{})
	assert.Len(t, orders, 1)
	assert.Equal(t, float64(alice.ID), orders[0].(map[string]interface{})["user_id"])

	// Admins see everything
	w = doJSON(t, adminRouter, "GET", "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, parseBody(t, w)["data"].([]interface{}), 2)
}

func TestOrderDetailOwnership(t *testing.T) {
	s := setupTestStore(t)
	alice := seedTestUser(t, s, "alice", false)
	bob := seedTestUser(t, s, "bob", false)
	admin := seedTestUser(t, s, "admin", true)

	aliceRouter := setupOrderRouter(s, alice.ID, false)

	w := doJSON(t, aliceRouter, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(parseBody(t, w)["data"].(map[string]interface{})["id"].(float64))
	url := fmt.Sprintf("/api/orders/%d", orderID)

	// Owner -> 200
	w = doJSON(t, aliceRouter, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another customer -> 403
	w = doJSON(t, setupOrderRouter(s, bob.ID, false), "GET", url, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin -> 200
	w = doJSON(t, setupOrderRouter(s, admin.ID, true), "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Absent id -> 404
	w = doJSON(t, aliceRouter, "GET", "/api/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderStatusAuthorization(t *testing.T) {
	s := setupTestStore(t)
	alice := seedTestUser(t, s, "alice", false)
	admin := seedTestUser(t, s, "admin", true)

	aliceRouter := setupOrderRouter(s, alice.ID, false)
	adminRouter := setupOrderRouter(s, admin.ID, true)

	w := doJSON(t, aliceRouter, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(parseBody(t, w)["data"].(map[string]interface{})["id"].(float64))
	url := fmt.Sprintf("/api/orders/%d/status", orderID)

	// Non-admin, even the owner -> 403
	w = doJSON(t, aliceRouter, "PATCH", url, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin -> 200 and the status sticks
	w = doJSON(t, adminRouter, "PATCH", url, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", parseBody(t, w)["data"].(map[string]interface{})["status"])

	// Any of the four values may be set in any sequence
	w = doJSON(t, adminRouter, "PATCH", url, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Outside the set -> 400
	w = doJSON(t, adminRouter, "PATCH", url, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Absent id -> 404
	w = doJSON(t, adminRouter, "PATCH", "/api/orders/999/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderItemsSnapshotSurvivesMenuEdit(t *testing.T) {
	s := setupTestStore(t)
	user := seedTestUser(t, s, "alice", false)
	router := setupOrderRouter(s, user.ID, false)

	item := models.MenuItem{Name: "Tea", Price: 1.5, Category: "beverage"}
	assert.NoError(t, s.CreateMenuItem(&item))

	w := doJSON(t, router, "POST", "/api/orders", teaOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(parseBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	// Repricing the menu must not rewrite order history
	newPrice := 99.0
	_, err := s.UpdateMenuItem(item.ID, store.MenuItemUpdate{Price: &newPrice})
	assert.NoError(t, err)

	w = doJSON(t, router, "GET", fmt.Sprintf("/api/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := parseBody(t, w)["data"].(map[string]interface{})["items"].([]interface{})
	assert.Equal(t, 1.5, items[0].(map[string]interface{})["price"])
}
