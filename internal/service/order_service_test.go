package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T, policy CheckoutPolicy) (*OrderService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Discount{},
		&models.Warranty{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	discountSvc := NewDiscountService(discountRepo)
	warrantySvc := NewWarrantyService(repository.NewWarrantyRepository(db), productRepo)
	svc := NewOrderService(orderRepo, productRepo, cartRepo, userRepo, discountRepo, discountSvc, warrantySvc, policy)
	return svc, db
}

func seedCheckoutUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("checkout_user_%d@example.com", id),
		PasswordHash: "hash",
		Role:         constants.UserRoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func seedCheckoutProduct(t *testing.T, db *gorm.DB, sku string, price string, stock, warrantyMonths int) *models.Product {
	t.Helper()
	product := models.Product{
		CategoryID:           1,
		Name:                 "Product " + sku,
		SKU:                  sku,
		Price:                models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		StockQuantity:        stock,
		SerialNumber:         "SN-" + sku,
		WarrantyPeriodMonths: warrantyMonths,
		IsActive:             true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func seedCartItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
}

func checkoutInputFixture() CheckoutInput {
	return CheckoutInput{
		ShippingName:    "Jane Fletcher",
		ShippingAddress: "1 Workshop Lane",
		ShippingCity:    "Springfield",
		ShippingState:   "IL",
		ShippingZipCode: "62701",
		ShippingCountry: "US",
		ShippingPhone:   "555-0100",
		PaymentMethod:   "credit_card",
	}
}

func TestCreateOrderTotalsAndSideEffects(t *testing.T) {
	policy := CheckoutPolicy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.RequireFromString("9.99"),
		TaxRate:               decimal.RequireFromString("0.10"),
	}
	svc, db := setupOrderServiceTest(t, policy)
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-DRILL", "40.00", 10, 24)
	seedCartItem(t, db, 1, product.ID, 2)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "ORD-") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	// subtotal 80.00 低于免邮门槛：80 - 0 + 8.00 + 9.99 = 97.99
	if order.Subtotal.String() != "80.00" {
		t.Fatalf("unexpected subtotal: %s", order.Subtotal.String())
	}
	if order.TaxAmount.String() != "8.00" {
		t.Fatalf("unexpected tax: %s", order.TaxAmount.String())
	}
	if order.ShippingAmount.String() != "9.99" {
		t.Fatalf("unexpected shipping: %s", order.ShippingAmount.String())
	}
	if order.TotalAmount.String() != "97.99" {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if order.Status != constants.OrderStatusPending || order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("unexpected initial statuses: %s / %s", order.Status, order.PaymentStatus)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 8 {
		t.Fatalf("expected stock=8, got: %d", reloaded.StockQuantity)
	}
	if reloaded.SoldCount != 2 {
		t.Fatalf("expected sold_count=2, got: %d", reloaded.SoldCount)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("expected cart cleared, got %d items", cartCount)
	}

	var warranties []models.Warranty
	if err := db.Where("order_id = ?", order.ID).Find(&warranties).Error; err != nil {
		t.Fatalf("load warranties failed: %v", err)
	}
	if len(warranties) != 1 {
		t.Fatalf("expected 1 warranty, got: %d", len(warranties))
	}
	w := warranties[0]
	if !strings.HasPrefix(w.WarrantyNo, "WRN-") {
		t.Fatalf("unexpected warranty no: %s", w.WarrantyNo)
	}
	if w.Status != constants.WarrantyStatusActive {
		t.Fatalf("unexpected warranty status: %s", w.Status)
	}
	wantEnd := w.StartDate.AddDate(0, 24, 0)
	if !w.EndDate.Equal(wantEnd) {
		t.Fatalf("expected end=%v, got: %v", wantEnd, w.EndDate)
	}
	if w.SerialNumber != product.SerialNumber {
		t.Fatalf("expected serial snapshot %s, got: %s", product.SerialNumber, w.SerialNumber)
	}

	var user models.User
	if err := db.First(&user, 1).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if user.TotalOrders != 1 {
		t.Fatalf("expected total_orders=1, got: %d", user.TotalOrders)
	}
	if user.LifetimeSpent.String() != "97.99" {
		t.Fatalf("expected lifetime_spent=97.99, got: %s", user.LifetimeSpent.String())
	}
}

func TestCreateOrderFreeShippingAtThreshold(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-SAW", "50.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 2)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ShippingAmount.String() != "0.00" {
		t.Fatalf("expected free shipping, got: %s", order.ShippingAmount.String())
	}
	if order.TotalAmount.String() != "100.00" {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)

	if _, err := svc.CreateOrder(1, checkoutInputFixture()); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got: %v", err)
	}
}

func TestCreateOrderShippingInfoRequired(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-GRIND", "30.00", 5, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	input := checkoutInputFixture()
	input.ShippingAddress = "   "
	if _, err := svc.CreateOrder(1, input); !errors.Is(err, ErrShippingInfoRequired) {
		t.Fatalf("expected ErrShippingInfoRequired, got: %v", err)
	}
}

func TestCreateOrderUserNotFound(t *testing.T) {
	svc, _ := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	if _, err := svc.CreateOrder(42, checkoutInputFixture()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	ok := seedCheckoutProduct(t, db, "HT-SOCKET", "20.00", 10, 12)
	scarce := seedCheckoutProduct(t, db, "HT-SCREW", "15.00", 1, 12)
	seedCartItem(t, db, 1, ok.ID, 2)
	seedCartItem(t, db, 1, scarce.ID, 3)

	_, err := svc.CreateOrder(1, checkoutInputFixture())
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}

	// 整单回滚：第一件商品的库存扣减也被撤销，订单与保修无残留
	var reloaded models.Product
	if err := db.First(&reloaded, ok.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got: %d", reloaded.StockQuantity)
	}
	var orderCount, warrantyCount, cartCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.Warranty{}).Count(&warrantyCount)
	db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartCount)
	if orderCount != 0 || warrantyCount != 0 {
		t.Fatalf("expected no orders/warranties, got: %d/%d", orderCount, warrantyCount)
	}
	if cartCount != 2 {
		t.Fatalf("expected cart intact, got %d items", cartCount)
	}
}

func TestCreateOrderPercentageDiscountWithCap(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "WS-PRESS", "200.00", 5, 36)
	seedCartItem(t, db, 1, product.ID, 1)

	discount := models.Discount{
		Code:              "SAVE10",
		Type:              constants.DiscountTypePercentage,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(15)),
		IsActive:          true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	input := checkoutInputFixture()
	input.DiscountCode = "save10"
	order, err := svc.CreateOrder(1, input)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	// 10% of 200 = 20，被上限 15 截断；200 - 15 = 185（满额免邮，税率 0）
	if order.DiscountAmount.String() != "15.00" {
		t.Fatalf("expected discount=15, got: %s", order.DiscountAmount.String())
	}
	if order.TotalAmount.String() != "185.00" {
		t.Fatalf("unexpected total: %s", order.TotalAmount.String())
	}
	if order.DiscountID == nil || *order.DiscountID != discount.ID {
		t.Fatalf("expected discount id recorded, got: %v", order.DiscountID)
	}

	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsageCount != 1 {
		t.Fatalf("expected usage_count=1, got: %d", reloaded.UsageCount)
	}
}

func TestCreateOrderDiscountBelowMinimumSkippedSilently(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "HT-KIT", "30.00", 5, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	discount := models.Discount{
		Code:           "BIG20",
		Type:           constants.DiscountTypeFixedAmount,
		Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
		IsActive:       true,
	}
	if err := db.Create(&discount).Error; err != nil {
		t.Fatalf("create discount failed: %v", err)
	}

	input := checkoutInputFixture()
	input.DiscountCode = "BIG20"
	order, err := svc.CreateOrder(1, input)
	if err != nil {
		t.Fatalf("expected order created despite invalid discount, got: %v", err)
	}
	if order.DiscountAmount.String() != "0.00" {
		t.Fatalf("expected zero discount, got: %s", order.DiscountAmount.String())
	}
	if order.DiscountID != nil {
		t.Fatalf("expected no discount id, got: %v", *order.DiscountID)
	}

	var reloaded models.Discount
	if err := db.First(&reloaded, discount.ID).Error; err != nil {
		t.Fatalf("reload discount failed: %v", err)
	}
	if reloaded.UsageCount != 0 {
		t.Fatalf("expected usage_count unchanged, got: %d", reloaded.UsageCount)
	}
}

func TestCancelOrderRestoresStockAndVoidsWarranties(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "WS-COMP", "60.00", 10, 24)
	seedCartItem(t, db, 1, product.ID, 3)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	cancelled, err := svc.CancelOrder(order.ID, 1)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got: %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at set")
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 10 {
		t.Fatalf("expected stock restored to 10, got: %d", reloaded.StockQuantity)
	}

	var warranties []models.Warranty
	if err := db.Where("order_id = ?", order.ID).Find(&warranties).Error; err != nil {
		t.Fatalf("load warranties failed: %v", err)
	}
	for _, w := range warranties {
		if w.Status != constants.WarrantyStatusVoided {
			t.Fatalf("expected warranty voided, got: %s", w.Status)
		}
	}
}

func TestCancelOrderRejectedAfterShipment(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-SAW-2", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusShipped,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	} {
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).
			UpdateColumn("status", status).Error; err != nil {
			t.Fatalf("force status failed: %v", err)
		}
		if _, err := svc.CancelOrder(order.ID, 1); !errors.Is(err, ErrOrderStateInvalid) {
			t.Fatalf("status %s: expected ErrOrderStateInvalid, got: %v", status, err)
		}
	}
}

func TestCancelOrderAlreadyCancelledIsNoop(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-DRILL-2", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.CancelOrder(order.ID, 1); err != nil {
		t.Fatalf("first cancel failed: %v", err)
	}
	if _, err := svc.CancelOrder(order.ID, 1); err != nil {
		t.Fatalf("second cancel should be noop, got: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StockQuantity != 10 {
		t.Fatalf("expected stock restored exactly once, got: %d", reloaded.StockQuantity)
	}
}

func TestCancelOrderScopedToOwner(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	seedCheckoutUser(t, db, 2)
	product := seedCheckoutProduct(t, db, "HT-PLIER", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.CancelOrder(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got: %v", err)
	}
}

func TestUpdateOrderStatusFollowsStateMachine(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "WS-VAC", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// pending 不能直接跳到 delivered
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStateInvalid) {
		t.Fatalf("expected ErrOrderStateInvalid, got: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, "bogus"); !errors.Is(err, ErrOrderStateInvalid) {
		t.Fatalf("expected ErrOrderStateInvalid for unknown status, got: %v", err)
	}

	for _, status := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusOutForDelivery,
		constants.OrderStatusDelivered,
	} {
		updated, err := svc.UpdateOrderStatus(order.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected status %s, got: %s", status, updated.Status)
		}
	}

	delivered, err := svc.GetOrderForAdmin(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if delivered.ActualDelivery == nil {
		t.Fatalf("expected actual_delivery recorded")
	}
}

func TestUpdatePaymentStatusPaidConfirmsPendingOrder(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "PT-ROUTER", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	updated, err := svc.UpdatePaymentStatus(order.ID, constants.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("update payment status failed: %v", err)
	}
	if updated.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got: %s", updated.PaymentStatus)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected auto-confirm, got: %s", updated.Status)
	}

	if _, err := svc.UpdatePaymentStatus(order.ID, "weird"); !errors.Is(err, ErrOrderStateInvalid) {
		t.Fatalf("expected ErrOrderStateInvalid for unknown payment status, got: %v", err)
	}
}

func TestUpdateTrackingPromotesToShipped(t *testing.T) {
	svc, db := setupOrderServiceTest(t, DefaultCheckoutPolicy())
	seedCheckoutUser(t, db, 1)
	product := seedCheckoutProduct(t, db, "WS-BENCH", "60.00", 10, 12)
	seedCartItem(t, db, 1, product.ID, 1)

	order, err := svc.CreateOrder(1, checkoutInputFixture())
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := svc.UpdateTracking(order.ID, TrackingInput{}); !errors.Is(err, ErrOrderStateInvalid) {
		t.Fatalf("expected ErrOrderStateInvalid for empty tracking number, got: %v", err)
	}

	eta := time.Now().AddDate(0, 0, 3)
	updated, err := svc.UpdateTracking(order.ID, TrackingInput{
		TrackingNumber:    "TRK123456",
		Carrier:           "UPS",
		EstimatedDelivery: &eta,
	})
	if err != nil {
		t.Fatalf("update tracking failed: %v", err)
	}
	if updated.TrackingNumber != "TRK123456" || updated.Carrier != "UPS" {
		t.Fatalf("unexpected tracking fields: %s / %s", updated.TrackingNumber, updated.Carrier)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("expected auto-promote to shipped, got: %s", updated.Status)
	}
}
