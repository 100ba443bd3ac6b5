package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/store"
	"github.com/yeremiapane/bistro-orders/utils"
)

type OrderController struct {
	Store *store.Store
}

func NewOrderController(s *store.Store) *OrderController {
	return &OrderController{Store: s}
}

type cartItemReq struct {
	MenuItemID uint    `json:"menu_item_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity" binding:"required,min=1"`
}

type orderDetailsReq struct {
	CustomerName        string  `json:"customer_name" binding:"required"`
	CustomerPhone       string  `json:"customer_phone" binding:"required"`
	OrderType           string  `json:"order_type" binding:"required,oneof=pickup dine-in"`
	SpecialInstructions string  `json:"special_instructions"`
	Subtotal            float64 `json:"subtotal"`
	Tax                 float64 `json:"tax"`
	Total               float64 `json:"total"`
}

// CreateOrder -> POST /api/orders (authenticated)
// The order owner is always the caller; a client-supplied user id is
// never trusted. Line items are stored as name/price snapshots.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	type request struct {
		OrderDetails orderDetailsReq `json:"order_details" binding:"required"`
		CartItems    []cartItemReq   `json:"cart_items"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if len(req.CartItems) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("Cart cannot be empty"))
		return
	}

	items := make([]models.OrderItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, models.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		})
	}

	// Totals are taken from the client as submitted. A recompute
	// mismatch is logged so it can be audited, but the stored figures
	// are not altered.
	if expSub, expTax, expTotal := models.CalcTotals(items); !moneyEqual(expSub, req.OrderDetails.Subtotal) ||
		!moneyEqual(expTax, req.OrderDetails.Tax) ||
		!moneyEqual(expTotal, req.OrderDetails.Total) {
		utils.ErrorLogger.Warnf(
			"order totals mismatch for user %d: submitted %.2f/%.2f/%.2f, computed %.2f/%.2f/%.2f",
			userID, req.OrderDetails.Subtotal, req.OrderDetails.Tax, req.OrderDetails.Total,
			expSub, expTax, expTotal)
	}

	order := models.Order{
		UserID:              userID,
		CustomerName:        req.OrderDetails.CustomerName,
		CustomerPhone:       req.OrderDetails.CustomerPhone,
		OrderType:           req.OrderDetails.OrderType,
		SpecialInstructions: req.OrderDetails.SpecialInstructions,
		Status:              models.StatusNew,
		Subtotal:            req.OrderDetails.Subtotal,
		Tax:                 req.OrderDetails.Tax,
		Total:               req.OrderDetails.Total,
	}

	if err := oc.Store.CreateOrder(&order, items); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d created by user %d (%d items, total %.2f)",
		order.ID, userID, len(items), order.Total)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrders -> GET /api/orders (authenticated)
// Admins see every order, customers only their own. Newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID := c.GetUint("user_id")
	isAdmin := c.GetBool("is_admin")

	var (
		orders []models.Order
		err    error
	)
	if isAdmin {
		orders, err = oc.Store.GetAllOrders()
	} else {
		orders, err = oc.Store.GetOrdersByUserID(userID)
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> GET /api/orders/:order_id (owner or admin)
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := parseID(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Store.GetOrderWithItems(id)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	userID := c.GetUint("user_id")
	isAdmin := c.GetBool("is_admin")
	if !isAdmin && order.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have access to this order"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order": order,
		"items": order.OrderItems,
	})
}

// UpdateOrderStatus -> PATCH /api/orders/:order_id/status (admin)
// Any of the four statuses may be set in any sequence; values outside
// the set are rejected here, not in the store.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status value"))
		return
	}

	order, err := oc.Store.UpdateOrderStatus(id, req.Status)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	utils.InfoLogger.Printf("Order #%d status set to %s", order.ID, order.Status)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
