package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutPolicy 结算策略：运费与税率规则
type CheckoutPolicy struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// DefaultCheckoutPolicy 默认结算策略：满 100 免运费，固定运费 9.99，税率 0
func DefaultCheckoutPolicy() CheckoutPolicy {
	return CheckoutPolicy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.NewFromFloat(9.99),
		TaxRate:               decimal.Zero,
	}
}

// OrderService 订单服务
type OrderService struct {
	orderRepo       repository.OrderRepository
	productRepo     repository.ProductRepository
	cartRepo        repository.CartRepository
	userRepo        repository.UserRepository
	discountRepo    repository.DiscountRepository
	discountService *DiscountService
	warrantyService *WarrantyService
	policy          CheckoutPolicy
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, discountRepo repository.DiscountRepository, discountService *DiscountService, warrantyService *WarrantyService, policy CheckoutPolicy) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		cartRepo:        cartRepo,
		userRepo:        userRepo,
		discountRepo:    discountRepo,
		discountService: discountService,
		warrantyService: warrantyService,
		policy:          policy,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	ShippingName    string
	ShippingAddress string
	ShippingCity    string
	ShippingState   string
	ShippingZipCode string
	ShippingCountry string
	ShippingPhone   string
	PaymentMethod   string
	DiscountCode    string
	Notes           string
}

// checkoutPlan 单个订单项的结算计划（含商品引用，用于签发保修）
type checkoutPlan struct {
	Product *models.Product
	Item    models.OrderItem
}

// generateOrderNo 生成订单编号（ORD-YYYYMMDD-XXXXXXXX）
func generateOrderNo(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s-%s", constants.OrderNumberPrefix, now.Format("20060102"), random[:8])
}

func validateShipping(input CheckoutInput) error {
	fields := []string{
		input.ShippingName,
		input.ShippingAddress,
		input.ShippingCity,
		input.ShippingState,
		input.ShippingZipCode,
		input.ShippingCountry,
		input.ShippingPhone,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrShippingInfoRequired
		}
	}
	return nil
}

// CreateOrder 结算下单：购物车转订单。
// 整个流程在单个数据库事务内执行：库存扣减、优惠计数、订单与订单项落库、
// 用户统计累加、购物车清空、保修签发，任一步失败则全部回滚。
func (s *OrderService) CreateOrder(userID uint, input CheckoutInput) (*models.Order, error) {
	if err := validateShipping(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cartItems, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(now),
		UserID:          userID,
		Status:          constants.OrderStatusPending,
		PaymentStatus:   constants.PaymentStatusPending,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		ShippingName:    strings.TrimSpace(input.ShippingName),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		ShippingCity:    strings.TrimSpace(input.ShippingCity),
		ShippingState:   strings.TrimSpace(input.ShippingState),
		ShippingZipCode: strings.TrimSpace(input.ShippingZipCode),
		ShippingCountry: strings.TrimSpace(input.ShippingCountry),
		ShippingPhone:   strings.TrimSpace(input.ShippingPhone),
		Notes:           strings.TrimSpace(input.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		// 逐项校验库存并生成快照；ReserveStock 为条件更新，
		// 并发结算不会把库存扣成负数。
		subtotal := decimal.Zero
		plans := make([]checkoutPlan, 0, len(cartItems))
		for _, cartItem := range cartItems {
			product, err := productRepo.GetByID(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			if cartItem.Quantity <= 0 {
				return ErrQuantityInvalid
			}
			if !product.InStock(cartItem.Quantity) {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			affected, err := productRepo.ReserveStock(product.ID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			totalPrice := product.Price.Decimal.Mul(decimal.NewFromInt(int64(cartItem.Quantity)))
			plans = append(plans, checkoutPlan{
				Product: product,
				Item: models.OrderItem{
					ProductID:   product.ID,
					ProductName: product.Name,
					ProductSKU:  product.SKU,
					Color:       product.Color,
					Size:        product.Size,
					UnitPrice:   product.Price,
					Quantity:    cartItem.Quantity,
					TotalPrice:  models.NewMoneyFromDecimal(totalPrice),
					CreatedAt:   now,
					UpdatedAt:   now,
				},
			})
			subtotal = subtotal.Add(totalPrice)
		}

		// 优惠码校验失败不阻断下单，静默按无优惠继续。
		discountAmount := decimal.Zero
		if strings.TrimSpace(input.DiscountCode) != "" {
			discount, err := s.discountService.ValidateDiscount(input.DiscountCode, models.NewMoneyFromDecimal(subtotal))
			if err != nil {
				logger.Debugw("checkout_discount_skipped",
					"user_id", userID,
					"code", input.DiscountCode,
					"reason", err.Error(),
				)
			} else {
				amount := s.discountService.CalculateDiscount(discount, models.NewMoneyFromDecimal(subtotal))
				affected, err := s.discountRepo.WithTx(tx).IncrementUsage(discount.ID)
				if err != nil {
					return err
				}
				if affected == 0 {
					// 并发下使用次数已达上限，按无优惠继续
					logger.Debugw("checkout_discount_skipped",
						"user_id", userID,
						"code", discount.Code,
						"reason", "usage limit reached",
					)
				} else {
					discountAmount = amount.Decimal
					order.DiscountID = &discount.ID
				}
			}
		}

		shippingAmount := s.policy.ShippingFee
		if subtotal.GreaterThanOrEqual(s.policy.FreeShippingThreshold) {
			shippingAmount = decimal.Zero
		}
		taxAmount := subtotal.Mul(s.policy.TaxRate).Round(2)
		totalAmount := subtotal.Sub(discountAmount).Add(taxAmount).Add(shippingAmount)

		order.Subtotal = models.NewMoneyFromDecimal(subtotal)
		order.DiscountAmount = models.NewMoneyFromDecimal(discountAmount)
		order.TaxAmount = models.NewMoneyFromDecimal(taxAmount)
		order.ShippingAmount = models.NewMoneyFromDecimal(shippingAmount)
		order.TotalAmount = models.NewMoneyFromDecimal(totalAmount)

		items := make([]models.OrderItem, 0, len(plans))
		for _, plan := range plans {
			items = append(items, plan.Item)
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		if err := userRepo.IncrementStats(userID, order.TotalAmount); err != nil {
			return err
		}
		if err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}

		// 每个订单项签发一条保修记录
		for _, plan := range plans {
			if _, err := s.warrantyService.IssueForOrderItem(tx, plan.Product, userID, order.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", userID,
		"items", len(order.Items),
		"total_amount", order.TotalAmount.String(),
	)
	return order, nil
}

// CancelOrder 取消订单：已发货/已送达订单不可取消。
// 取消会恢复库存、作废关联保修，但不回退售出计数与用户消费统计。
func (s *OrderService) CancelOrder(orderID uint, userID uint) (*models.Order, error) {
	var order *models.Order
	var err error
	if userID > 0 {
		order, err = s.orderRepo.GetByIDAndUser(orderID, userID)
	} else {
		order, err = s.orderRepo.GetByID(orderID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch order.Status {
	case constants.OrderStatusShipped, constants.OrderStatusOutForDelivery, constants.OrderStatusDelivered:
		return nil, ErrOrderStateInvalid
	case constants.OrderStatusCancelled:
		return order, nil
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		for _, item := range order.Items {
			if _, err := productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"status":       constants.OrderStatusCancelled,
			"cancelled_at": now,
			"updated_at":   now,
		}
		if err := orderRepo.UpdateFields(order.ID, updates); err != nil {
			return err
		}

		voided, err := s.warrantyService.warrantyRepo.WithTx(tx).
			UpdateStatusByOrder(order.ID, constants.WarrantyStatusActive, constants.WarrantyStatusVoided)
		if err != nil {
			return err
		}
		logger.Infow("order_cancelled",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"warranties_voided", voided,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = constants.OrderStatusCancelled
	order.CancelledAt = &now
	return order, nil
}

// UpdateOrderStatus 管理端更新订单状态，按状态机校验迁移合法性。
// 迁移到 delivered 时记录实际送达时间；迁移到 cancelled 时走取消流程。
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	target := strings.ToLower(strings.TrimSpace(targetStatus))
	if !validOrderStatus(target) {
		return nil, ErrOrderStateInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransitionOrderStatus(order.Status, target) {
		return nil, ErrOrderStateInvalid
	}

	if target == constants.OrderStatusCancelled {
		return s.CancelOrder(orderID, 0)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}
	if target == constants.OrderStatusDelivered {
		updates["actual_delivery"] = now
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}

	order.Status = target
	if target == constants.OrderStatusDelivered {
		order.ActualDelivery = &now
	}
	logger.Infow("order_status_updated", "order_id", order.ID, "status", target)
	return order, nil
}

// UpdatePaymentStatus 更新支付状态；支付成功时自动将 pending 订单推进到 confirmed。
func (s *OrderService) UpdatePaymentStatus(orderID uint, paymentStatus string) (*models.Order, error) {
	status := strings.ToLower(strings.TrimSpace(paymentStatus))
	switch status {
	case constants.PaymentStatusPending, constants.PaymentStatusPaid,
		constants.PaymentStatusFailed, constants.PaymentStatusRefunded:
	default:
		return nil, ErrOrderStateInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_status": status,
		"updated_at":     now,
	}
	if status == constants.PaymentStatusPaid && order.Status == constants.OrderStatusPending {
		updates["status"] = constants.OrderStatusConfirmed
		order.Status = constants.OrderStatusConfirmed
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}
	order.PaymentStatus = status
	logger.Infow("order_payment_status_updated", "order_id", order.ID, "payment_status", status)
	return order, nil
}

// TrackingInput 物流信息输入
type TrackingInput struct {
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
}

// UpdateTracking 填写物流信息；未发货订单自动推进到 shipped。
func (s *OrderService) UpdateTracking(orderID uint, input TrackingInput) (*models.Order, error) {
	if strings.TrimSpace(input.TrackingNumber) == "" {
		return nil, ErrOrderStateInvalid
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	now := time.Now()
	updates := map[string]interface{}{
		"tracking_number": strings.TrimSpace(input.TrackingNumber),
		"carrier":         strings.TrimSpace(input.Carrier),
		"updated_at":      now,
	}
	if input.EstimatedDelivery != nil {
		updates["estimated_delivery"] = *input.EstimatedDelivery
	}
	if canTransitionOrderStatus(order.Status, constants.OrderStatusShipped) && order.Status != constants.OrderStatusShipped {
		updates["status"] = constants.OrderStatusShipped
		order.Status = constants.OrderStatusShipped
	}
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, err
	}

	order.TrackingNumber = strings.TrimSpace(input.TrackingNumber)
	order.Carrier = strings.TrimSpace(input.Carrier)
	order.EstimatedDelivery = input.EstimatedDelivery
	logger.Infow("order_tracking_updated", "order_id", order.ID, "tracking_number", order.TrackingNumber)
	return order, nil
}

// GetOrderByUser 获取用户自己的订单
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}

// ListOrdersForAdmin 管理端获取订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrderForAdmin 管理端获取订单
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}
