package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/store"
	"github.com/yeremiapane/bistro-orders/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	Store *store.Store
}

func NewMenuController(s *store.Store) *MenuController {
	return &MenuController{Store: s}
}

// GetAllMenuItems -> GET /api/menu?category=
// Without a category (or with category=all) the full list is returned.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	category := c.Query("category")

	items, err := mc.Store.GetMenuItemsByCategory(category)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID -> GET /api/menu/:menu_id
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, err := parseID(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	item, err := mc.Store.GetMenuItem(id)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem -> POST /api/menu (admin)
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	type request struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		ImageURL    string  `json:"image_url"`
		Category    string  `json:"category"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if req.Category == "" {
		req.Category = "food"
	}

	item := models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}

	if err := mc.Store.CreateMenuItem(&item); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (id=%d)", item.Name, item.ID)

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> PUT /api/menu/:menu_id (admin)
// Partial body; absent fields are left untouched.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, err := parseID(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	var update store.MenuItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	item, err := mc.Store.UpdateMenuItem(id, update)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> DELETE /api/menu/:menu_id (admin)
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := parseID(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	deleted, err := mc.Store.DeleteMenuItem(id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
