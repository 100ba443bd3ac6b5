package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/bistro-orders/models"
	"github.com/yeremiapane/bistro-orders/router"
	"github.com/yeremiapane/bistro-orders/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestRouter(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return router.SetupRouter(db)
}

// A burst from a single IP beyond the per-second budget must start
// seeing 429s; the limiter has to run for routes registered after it.
func TestGlobalRateLimiterFires(t *testing.T) {
	r := setupTestRouter(t)

	var ok, tooMany int
	for i := 0; i < 60; i++ {
		req := httptest.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		switch w.Code {
		case http.StatusOK:
			ok++
		case http.StatusTooManyRequests:
			tooMany++
		default:
			t.Fatalf("unexpected status %d on request %d", w.Code, i)
		}
	}

	assert.Equal(t, 60, ok+tooMany)
	assert.GreaterOrEqual(t, ok, 50)
	assert.GreaterOrEqual(t, tooMany, 1, "burst beyond the limit should be rejected")
}
