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
	"gorm.io/gorm"
)

func setupDiscountAdminServiceTest(t *testing.T) (*DiscountAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:discount_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Discount{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewDiscountAdminService(repository.NewDiscountRepository(db)), db
}

func TestDiscountAdminCreateNormalizes(t *testing.T) {
	svc, _ := setupDiscountAdminServiceTest(t)

	discount, err := svc.Create(DiscountInput{
		Code:        "  save10 ",
		Type:        " PERCENTAGE ",
		Value:       money("10"),
		Description: " ten percent off ",
	})
	if err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	if discount.Code != "SAVE10" {
		t.Fatalf("expected uppercased code, got: %q", discount.Code)
	}
	if discount.Type != constants.DiscountTypePercentage {
		t.Fatalf("expected normalized type, got: %q", discount.Type)
	}
	if discount.CustomerSegment != constants.CustomerSegmentAll {
		t.Fatalf("expected default segment, got: %q", discount.CustomerSegment)
	}
	if !discount.IsActive {
		t.Fatalf("expected active by default")
	}
}

func TestDiscountAdminCreateValidations(t *testing.T) {
	svc, _ := setupDiscountAdminServiceTest(t)
	now := time.Now()
	earlier := now.AddDate(0, 0, -1)

	cases := []struct {
		name  string
		input DiscountInput
	}{
		{"blank code", DiscountInput{Code: " ", Type: constants.DiscountTypePercentage, Value: money("10")}},
		{"unknown type", DiscountInput{Code: "X", Type: "mystery", Value: money("10")}},
		{"negative value", DiscountInput{Code: "X", Type: constants.DiscountTypeFixedAmount, Value: money("-5")}},
		{"percentage over 100", DiscountInput{Code: "X", Type: constants.DiscountTypePercentage, Value: money("150")}},
		{"valid_to before valid_from", DiscountInput{Code: "X", Type: constants.DiscountTypeFixedAmount, Value: money("5"), ValidFrom: &now, ValidTo: &earlier}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.input); !errors.Is(err, ErrDiscountInvalid) {
			t.Errorf("%s: expected ErrDiscountInvalid, got: %v", tc.name, err)
		}
	}

	if _, err := svc.Create(DiscountInput{Code: "DUP", Type: constants.DiscountTypeFixedAmount, Value: money("5")}); err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	if _, err := svc.Create(DiscountInput{Code: "dup", Type: constants.DiscountTypeFixedAmount, Value: money("5")}); !errors.Is(err, ErrDiscountExists) {
		t.Fatalf("expected ErrDiscountExists, got: %v", err)
	}
}

func TestDiscountAdminUpdate(t *testing.T) {
	svc, _ := setupDiscountAdminServiceTest(t)
	first, err := svc.Create(DiscountInput{Code: "FIRST", Type: constants.DiscountTypeFixedAmount, Value: money("5")})
	if err != nil {
		t.Fatalf("create discount failed: %v", err)
	}
	second, err := svc.Create(DiscountInput{Code: "SECOND", Type: constants.DiscountTypeFixedAmount, Value: money("5")})
	if err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	if _, err := svc.Update(second.ID, DiscountInput{Code: "FIRST", Type: constants.DiscountTypeFixedAmount, Value: money("5")}); !errors.Is(err, ErrDiscountExists) {
		t.Fatalf("expected ErrDiscountExists on code conflict, got: %v", err)
	}
	if _, err := svc.Update(999, DiscountInput{Code: "GHOST", Type: constants.DiscountTypeFixedAmount, Value: money("5")}); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got: %v", err)
	}

	updated, err := svc.Update(first.ID, DiscountInput{
		Code:               "FIRST",
		Type:               constants.DiscountTypePercentage,
		Value:              money("25"),
		MaxDiscountAmount:  money("30"),
		UsageLimit:         50,
		ApplicableProducts: []uint{3, 7},
	})
	if err != nil {
		t.Fatalf("update discount failed: %v", err)
	}
	if updated.Type != constants.DiscountTypePercentage || updated.UsageLimit != 50 {
		t.Fatalf("unexpected discount after update: %+v", updated)
	}
	if !updated.ApplicableProducts.Contains(7) {
		t.Fatalf("expected applicable products stored: %+v", updated.ApplicableProducts)
	}
}

func TestDiscountAdminDeactivateIsIdempotent(t *testing.T) {
	svc, db := setupDiscountAdminServiceTest(t)
	discount, err := svc.Create(DiscountInput{Code: "OFF", Type: constants.DiscountTypeFixedAmount, Value: money("5")})
	if err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	if err := svc.Deactivate(discount.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := svc.Deactivate(discount.ID); err != nil {
		t.Fatalf("second deactivate should be noop, got: %v", err)
	}
	if err := svc.Deactivate(999); !errors.Is(err, ErrDiscountNotFound) {
		t.Fatalf("expected ErrDiscountNotFound, got: %v", err)
	}

	// 停用后数据保留，仍可按ID查询
	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected inactive")
	}
	if _, err := svc.Get(discount.ID); err != nil {
		t.Fatalf("get after deactivate failed: %v", err)
	}
}
