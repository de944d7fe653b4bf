package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/provider"
	"github.com/gearmart-next/internal/repository"
	"github.com/gearmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupWarrantyHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_warranty_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Warranty{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db

	warrantyRepo := repository.NewWarrantyRepository(db)
	productRepo := repository.NewProductRepository(db)
	h := New(&provider.Container{
		WarrantyRepo:    warrantyRepo,
		ProductRepo:     productRepo,
		WarrantyService: service.NewWarrantyService(warrantyRepo, productRepo),
	})

	r := gin.New()
	r.GET("/api/v1/warranties/check/:warranty_no", h.CheckWarranty)
	return r, db
}

func seedCheckableWarranty(t *testing.T, db *gorm.DB, no string, endDate time.Time) {
	t.Helper()
	product := models.Product{Name: "Cordless Drill", SKU: "PT-DRILL-" + no, Price: models.NewMoneyFromFloat(99), IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	warranty := models.Warranty{
		WarrantyNo:   no,
		ProductID:    product.ID,
		UserID:       1,
		PurchaseDate: endDate.AddDate(-2, 0, 0),
		StartDate:    endDate.AddDate(-2, 0, 0),
		EndDate:      endDate,
		Status:       constants.WarrantyStatusActive,
	}
	if err := db.Create(&warranty).Error; err != nil {
		t.Fatalf("seed warranty failed: %v", err)
	}
}

func getWarrantyCheck(t *testing.T, r *gin.Engine, no string) (int, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/warranties/check/"+no, nil)
	r.ServeHTTP(w, req)

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal envelope failed: %v", err)
	}
	var statusCode int
	if err := json.Unmarshal(envelope["status_code"], &statusCode); err != nil {
		t.Fatalf("unmarshal status_code failed: %v", err)
	}
	return statusCode, envelope
}

func TestCheckWarrantyReturnsView(t *testing.T) {
	r, db := setupWarrantyHandlerTest(t)
	seedCheckableWarranty(t, db, "WRN-AAAABBBBCCCC", time.Now().AddDate(0, 0, 10))

	statusCode, envelope := getWarrantyCheck(t, r, "wrn-aaaabbbbcccc")
	if statusCode != 0 {
		t.Fatalf("status_code want 0 got %d", statusCode)
	}
	var view WarrantyCheckView
	if err := json.Unmarshal(envelope["data"], &view); err != nil {
		t.Fatalf("unmarshal view failed: %v", err)
	}
	if view.WarrantyNo != "WRN-AAAABBBBCCCC" {
		t.Fatalf("warranty_no want WRN-AAAABBBBCCCC got %s", view.WarrantyNo)
	}
	if view.ProductName != "Cordless Drill" {
		t.Fatalf("product_name want Cordless Drill got %s", view.ProductName)
	}
	if !view.Valid || !view.ExpiringSoon {
		t.Fatalf("active warranty ending in 10 days should be valid and expiring soon, got valid=%v expiring=%v", view.Valid, view.ExpiringSoon)
	}
	if view.DaysUntilExpiry < 9 || view.DaysUntilExpiry > 10 {
		t.Fatalf("days_until_expiry want ~10 got %d", view.DaysUntilExpiry)
	}
}

func TestCheckWarrantyRecentlyLapsed(t *testing.T) {
	r, db := setupWarrantyHandlerTest(t)
	seedCheckableWarranty(t, db, "WRN-DDDDEEEEFFFF", time.Now().Add(-time.Hour))

	statusCode, envelope := getWarrantyCheck(t, r, "WRN-DDDDEEEEFFFF")
	if statusCode != 0 {
		t.Fatalf("status_code want 0 got %d", statusCode)
	}
	var view WarrantyCheckView
	if err := json.Unmarshal(envelope["data"], &view); err != nil {
		t.Fatalf("unmarshal view failed: %v", err)
	}
	if view.Valid {
		t.Fatalf("lapsed warranty should not be valid")
	}
	if view.ExpiringSoon {
		t.Fatalf("lapsed warranty should not be expiring soon")
	}
}

func TestCheckWarrantyNotFound(t *testing.T) {
	r, _ := setupWarrantyHandlerTest(t)

	statusCode, _ := getWarrantyCheck(t, r, "WRN-000000000000")
	if statusCode != 404 {
		t.Fatalf("status_code want 404 got %d", statusCode)
	}
}
