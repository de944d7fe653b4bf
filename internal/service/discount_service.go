package service

import (
	"strings"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountService 优惠服务
type DiscountService struct {
	discountRepo repository.DiscountRepository
}

// NewDiscountService 创建优惠服务
func NewDiscountService(discountRepo repository.DiscountRepository) *DiscountService {
	return &DiscountService{discountRepo: discountRepo}
}

// ValidateDiscount 校验优惠码对指定订单金额是否可用，返回优惠记录。
// 校验项：存在、启用、有效期、使用上限、最低订单金额。
func (s *DiscountService) ValidateDiscount(code string, orderTotal models.Money) (*models.Discount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrDiscountNotFound
	}

	discount, err := s.discountRepo.GetByCode(normalized)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	if !discount.IsCurrentlyValid(time.Now()) {
		return discount, ErrDiscountInvalid
	}
	if orderTotal.Decimal.Cmp(discount.MinOrderAmount.Decimal) < 0 {
		return discount, ErrDiscountMinAmount
	}
	return discount, nil
}

// CalculateDiscount 按优惠类型计算折扣金额。
// 结果始终落在 [0, orderTotal] 区间；无效或不适用时为 0。
func (s *DiscountService) CalculateDiscount(discount *models.Discount, orderTotal models.Money) models.Money {
	if discount == nil || !discount.IsCurrentlyValid(time.Now()) {
		return models.ZeroMoney()
	}

	var amount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(discount.Type)) {
	case constants.DiscountTypePercentage:
		amount = orderTotal.Decimal.Mul(discount.Value.Decimal).Div(decimal.NewFromInt(100))
		if discount.MaxDiscountAmount.Decimal.GreaterThan(decimal.Zero) && amount.GreaterThan(discount.MaxDiscountAmount.Decimal) {
			amount = discount.MaxDiscountAmount.Decimal
		}
	case constants.DiscountTypeFixedAmount:
		amount = discount.Value.Decimal
	case constants.DiscountTypeFreeShipping:
		// 免运费类型不产生金额折扣，运费减免走独立路径（当前未实现）
		amount = decimal.Zero
	case constants.DiscountTypeBuyXGetY:
		// buy_x_get_y 类型尚无计算规则，按 0 处理
		amount = decimal.Zero
	default:
		amount = decimal.Zero
	}

	if amount.GreaterThan(orderTotal.Decimal) {
		amount = orderTotal.Decimal
	}
	if amount.LessThan(decimal.Zero) {
		amount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(amount)
}

// IncrementUsage 累加优惠使用次数，条件更新保证不超过使用上限。
func (s *DiscountService) IncrementUsage(id uint) error {
	affected, err := s.discountRepo.IncrementUsage(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDiscountInvalid
	}
	return nil
}

// GetByCode 根据优惠码查询（管理端）
func (s *DiscountService) GetByCode(code string) (*models.Discount, error) {
	discount, err := s.discountRepo.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	return discount, nil
}
