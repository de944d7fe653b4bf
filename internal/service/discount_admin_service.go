package service

import (
	"strings"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// DiscountAdminService 优惠管理服务
type DiscountAdminService struct {
	repo repository.DiscountRepository
}

// NewDiscountAdminService 创建优惠管理服务
func NewDiscountAdminService(repo repository.DiscountRepository) *DiscountAdminService {
	return &DiscountAdminService{repo: repo}
}

// DiscountInput 创建/更新优惠输入
type DiscountInput struct {
	Code                 string
	Description          string
	Type                 string
	Value                models.Money
	MinOrderAmount       models.Money
	MaxDiscountAmount    models.Money
	ValidFrom            *time.Time
	ValidTo              *time.Time
	UsageLimit           int
	PerCustomerLimit     int
	CustomerSegment      string
	ApplicableProducts   []uint
	ApplicableCategories []uint
	AutoApply            bool
	IsActive             *bool
}

func validDiscountType(t string) bool {
	switch t {
	case constants.DiscountTypePercentage,
		constants.DiscountTypeFixedAmount,
		constants.DiscountTypeFreeShipping,
		constants.DiscountTypeBuyXGetY:
		return true
	}
	return false
}

func (s *DiscountAdminService) normalizeInput(input *DiscountInput) error {
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	if input.Code == "" {
		return ErrDiscountInvalid
	}
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if !validDiscountType(input.Type) {
		return ErrDiscountInvalid
	}
	if input.Value.Decimal.LessThan(decimal.Zero) {
		return ErrDiscountInvalid
	}
	if input.Type == constants.DiscountTypePercentage && input.Value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return ErrDiscountInvalid
	}
	if input.ValidFrom != nil && input.ValidTo != nil && input.ValidTo.Before(*input.ValidFrom) {
		return ErrDiscountInvalid
	}
	if strings.TrimSpace(input.CustomerSegment) == "" {
		input.CustomerSegment = constants.CustomerSegmentAll
	}
	return nil
}

// Create 创建优惠
func (s *DiscountAdminService) Create(input DiscountInput) (*models.Discount, error) {
	if err := s.normalizeInput(&input); err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDiscountExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	discount := &models.Discount{
		Code:                 input.Code,
		Description:          strings.TrimSpace(input.Description),
		Type:                 input.Type,
		Value:                input.Value,
		MinOrderAmount:       input.MinOrderAmount,
		MaxDiscountAmount:    input.MaxDiscountAmount,
		ValidFrom:            input.ValidFrom,
		ValidTo:              input.ValidTo,
		UsageLimit:           input.UsageLimit,
		UsageCount:           0,
		PerCustomerLimit:     input.PerCustomerLimit,
		CustomerSegment:      input.CustomerSegment,
		ApplicableProducts:   models.UintArray(input.ApplicableProducts),
		ApplicableCategories: models.UintArray(input.ApplicableCategories),
		IsActive:             isActive,
		AutoApply:            input.AutoApply,
	}

	if err := s.repo.Create(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Update 更新优惠
func (s *DiscountAdminService) Update(id uint, input DiscountInput) (*models.Discount, error) {
	if id == 0 {
		return nil, ErrDiscountNotFound
	}
	discount, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	if err := s.normalizeInput(&input); err != nil {
		return nil, err
	}
	if input.Code != discount.Code {
		exist, err := s.repo.GetByCode(input.Code)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != id {
			return nil, ErrDiscountExists
		}
	}

	discount.Code = input.Code
	discount.Description = strings.TrimSpace(input.Description)
	discount.Type = input.Type
	discount.Value = input.Value
	discount.MinOrderAmount = input.MinOrderAmount
	discount.MaxDiscountAmount = input.MaxDiscountAmount
	discount.ValidFrom = input.ValidFrom
	discount.ValidTo = input.ValidTo
	discount.UsageLimit = input.UsageLimit
	discount.PerCustomerLimit = input.PerCustomerLimit
	discount.CustomerSegment = input.CustomerSegment
	discount.ApplicableProducts = models.UintArray(input.ApplicableProducts)
	discount.ApplicableCategories = models.UintArray(input.ApplicableCategories)
	discount.AutoApply = input.AutoApply
	if input.IsActive != nil {
		discount.IsActive = *input.IsActive
	}

	if err := s.repo.Update(discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// Deactivate 停用优惠（软删除，不物理删除）
func (s *DiscountAdminService) Deactivate(id uint) error {
	discount, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if discount == nil {
		return ErrDiscountNotFound
	}
	if !discount.IsActive {
		return nil
	}
	discount.IsActive = false
	return s.repo.Update(discount)
}

// List 获取优惠列表
func (s *DiscountAdminService) List(filter repository.DiscountListFilter) ([]models.Discount, int64, error) {
	return s.repo.List(filter)
}

// Get 根据ID获取优惠
func (s *DiscountAdminService) Get(id uint) (*models.Discount, error) {
	discount, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}
	return discount, nil
}
