package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port          string
	DBDriver      string
	MySQLDSN      string
	SQLitePath    string
	AdminUsername string
	AdminPassword string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		MySQLDSN:      getEnv("MYSQL_DSN", "root:password@tcp(localhost:3306)/bistro?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath:    getEnv("SQLITE_PATH", "bistro.db"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// OpenDB opens the configured database. DB_DRIVER=sqlite keeps local
// development free of a MySQL instance.
func (c *Config) OpenDB() (*gorm.DB, error) {
	switch c.DBDriver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(c.SQLitePath), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect sqlite: %w", err)
		}
		return db, nil
	case "mysql":
		db, err := gorm.Open(mysql.Open(c.MySQLDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
