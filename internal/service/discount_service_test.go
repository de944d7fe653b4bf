package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupDiscountServiceTest(t *testing.T) (*DiscountService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewDiscountService(repository.NewDiscountRepository(db)), db
}

func money(s string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(s))
}

func TestValidateDiscountNormalizesCode(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	discount := models.Discount{
		Code:     "WELCOME10",
		Type:     constants.DiscountTypePercentage,
		Value:    money("10"),
		IsActive: true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	got, err := svc.ValidateDiscount("  welcome10 ", money("50.00"))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.ID != discount.ID {
		t.Fatalf("unexpected discount: %+v", got)
	}

	if _, err := svc.ValidateDiscount("", money("50.00")); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound for empty code, got: %v", err)
	}
	if _, err := svc.ValidateDiscount("NOPE", money("50.00")); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got: %v", err)
	}
}

func TestValidateDiscountRejectsInactiveExpiredAndExhausted(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	now := time.Now()
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	cases := []models.Discount{
		{Code: "OFF", Type: constants.DiscountTypeFixedAmount, Value: money("5"), IsActive: false},
		{Code: "TOOSOON", Type: constants.DiscountTypeFixedAmount, Value: money("5"), IsActive: true, ValidFrom: &future},
		{Code: "TOOLATE", Type: constants.DiscountTypeFixedAmount, Value: money("5"), IsActive: true, ValidTo: &past},
		{Code: "USEDUP", Type: constants.DiscountTypeFixedAmount, Value: money("5"), IsActive: true, UsageLimit: 3, UsageCount: 3},
	}
	for i := range cases {
		if err := db.Create(&cases[i]).Error; err != nil {
			t.Fatalf("create discount failed: %v", err)
		}
	}
	for _, d := range cases {
		if _, err := svc.ValidateDiscount(d.Code, money("999.00")); !errors.Is(err, ErrDiscountInvalid) {
			t.Fatalf("code %s: expected ErrDiscountInvalid, got: %v", d.Code, err)
		}
	}
}

func TestValidateDiscountMinimumOrderAmount(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	discount := models.Discount{
		Code:           "BIG20",
		Type:           constants.DiscountTypeFixedAmount,
		Value:          money("20"),
		MinOrderAmount: money("150"),
		IsActive:       true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	if _, err := svc.ValidateDiscount("BIG20", money("149.99")); !errors.Is(err, ErrDiscountMinAmount) {
		t.Fatalf("expected ErrDiscountMinAmount, got: %v", err)
	}
	if _, err := svc.ValidateDiscount("BIG20", money("150.00")); err != nil {
		t.Fatalf("expected valid at threshold, got: %v", err)
	}
}

func TestCalculateDiscountByType(t *testing.T) {
	svc, _ := setupDiscountServiceTest(t)
	total := money("200.00")

	cases := []struct {
		name     string
		discount models.Discount
		want     string
	}{
		{
			name:     "percentage",
			discount: models.Discount{Type: constants.DiscountTypePercentage, Value: money("10"), IsActive: true},
			want:     "20.00",
		},
		{
			name:     "percentage capped",
			discount: models.Discount{Type: constants.DiscountTypePercentage, Value: money("10"), MaxDiscountAmount: money("15"), IsActive: true},
			want:     "15.00",
		},
		{
			name:     "fixed amount",
			discount: models.Discount{Type: constants.DiscountTypeFixedAmount, Value: money("30"), IsActive: true},
			want:     "30.00",
		},
		{
			name:     "fixed amount clamped to order total",
			discount: models.Discount{Type: constants.DiscountTypeFixedAmount, Value: money("500"), IsActive: true},
			want:     "200.00",
		},
		{
			name:     "free shipping has no amount",
			discount: models.Discount{Type: constants.DiscountTypeFreeShipping, Value: money("0"), IsActive: true},
			want:     "0.00",
		},
		{
			name:     "buy x get y has no amount",
			discount: models.Discount{Type: constants.DiscountTypeBuyXGetY, Value: money("1"), IsActive: true},
			want:     "0.00",
		},
		{
			name:     "unknown type",
			discount: models.Discount{Type: "mystery", Value: money("50"), IsActive: true},
			want:     "0.00",
		},
		{
			name:     "inactive yields zero",
			discount: models.Discount{Type: constants.DiscountTypeFixedAmount, Value: money("30"), IsActive: false},
			want:     "0.00",
		},
	}
	for _, tc := range cases {
		d := tc.discount
		if got := svc.CalculateDiscount(&d, total); got.String() != tc.want {
			t.Errorf("%s: expected %s, got: %s", tc.name, tc.want, got.String())
		}
	}

	if got := svc.CalculateDiscount(nil, total); got.String() != "0.00" {
		t.Errorf("nil discount: expected 0.00, got: %s", got.String())
	}
}

func TestIncrementUsageStopsAtLimit(t *testing.T) {
	svc, db := setupDiscountServiceTest(t)
	discount := models.Discount{
		Code:       "LIMITED",
		Type:       constants.DiscountTypeFixedAmount,
		Value:      money("5"),
		UsageLimit: 2,
		IsActive:   true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	if err := svc.IncrementUsage(discount.ID); err != nil {
		t.Fatalf("first increment failed: %v", err)
	}
	if err := svc.IncrementUsage(discount.ID); err != nil {
		t.Fatalf("second increment failed: %v", err)
	}
	if err := svc.IncrementUsage(discount.ID); !errors.Is(err, ErrDiscountInvalid) {
		t.Fatalf("expected ErrDiscountInvalid past limit, got: %v", err)
	}

	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsageCount != 2 {
		t.Fatalf("expected usage_count=2, got: %d", reloaded.UsageCount)
	}
}
