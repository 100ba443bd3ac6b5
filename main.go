package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/bistro-orders/config"
	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/router"
	"github.com/yeremiapane/bistro-orders/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := cfg.OpenDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedAdmin(db, cfg)

	r := router.SetupRouter(db)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedAdmin creates the initial admin account when none exists yet.
// Registration never grants the admin flag, so without a seed there
// would be no way to manage the menu.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		utils.ErrorLogger.Printf("Error checking for admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	if cfg.AdminPassword == "" {
		utils.ErrorLogger.Println("No admin user exists and ADMIN_PASSWORD is not set; skipping admin seed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := models.User{
		Username: cfg.AdminUsername,
		Password: string(hashed),
		Name:     "Administrator",
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Printf("Error seeding admin user: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded admin user %q", admin.Username)
}
