package store

import (
	"github.com/yeremiapane/bistro-orders/models"
	"gorm.io/gorm"
)

// Store is the repository for users, menu items and orders. It is
// constructed once in main and injected into the controllers; absence is
// always reported as gorm.ErrRecordNotFound, never a panic.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// ---------------- Users ----------------

func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername compares usernames case-insensitively.
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// ---------------- Menu items ----------------

func (s *Store) GetAllMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := s.DB.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetMenuItemsByCategory filters by category; "all" or an empty string
// aliases to the full list.
func (s *Store) GetMenuItemsByCategory(category string) ([]models.MenuItem, error) {
	if category == "" || category == "all" {
		return s.GetAllMenuItems()
	}
	var items []models.MenuItem
	if err := s.DB.Where("category = ?", category).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateMenuItem(item *models.MenuItem) error {
	return s.DB.Create(item).Error
}

// MenuItemUpdate carries the fields of a partial menu update; nil fields
// are left untouched.
type MenuItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
}

func (s *Store) UpdateMenuItem(id uint, update MenuItemUpdate) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.ImageURL != nil {
		item.ImageURL = *update.ImageURL
	}
	if update.Category != nil {
		item.Category = *update.Category
	}

	if err := s.DB.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteMenuItem reports whether a row was actually removed.
func (s *Store) DeleteMenuItem(id uint) (bool, error) {
	result := s.DB.Delete(&models.MenuItem{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ---------------- Orders ----------------

// CreateOrder persists the order and its line items in one transaction,
// so no partial order is ever observable.
func (s *Store) CreateOrder(order *models.Order, items []models.OrderItem) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.OrderItems = items
		return nil
	})
}

func (s *Store) GetOrdersByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) GetOrderWithItems(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("OrderItems").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus replaces the status field. Status value validation
// is the router's job, not the store's.
func (s *Store) UpdateOrderStatus(id uint, status string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, id).Error; err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.DB.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
