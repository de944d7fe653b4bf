package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gearmart-next/internal/http/response"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"
	"github.com/gearmart-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// DiscountRequest 优惠创建/更新请求
type DiscountRequest struct {
	Code                 string  `json:"code" binding:"required"`
	Description          string  `json:"description"`
	Type                 string  `json:"type" binding:"required"`
	Value                float64 `json:"value"`
	MinOrderAmount       float64 `json:"min_order_amount"`
	MaxDiscountAmount    float64 `json:"max_discount_amount"`
	ValidFrom            string  `json:"valid_from"`
	ValidTo              string  `json:"valid_to"`
	UsageLimit           int     `json:"usage_limit"`
	PerCustomerLimit     int     `json:"per_customer_limit"`
	CustomerSegment      string  `json:"customer_segment"`
	ApplicableProducts   []uint  `json:"applicable_products"`
	ApplicableCategories []uint  `json:"applicable_categories"`
	AutoApply            bool    `json:"auto_apply"`
	IsActive             *bool   `json:"is_active"`
}

func (r DiscountRequest) toInput() (service.DiscountInput, error) {
	validFrom, err := parseTimeNullable(r.ValidFrom)
	if err != nil {
		return service.DiscountInput{}, err
	}
	validTo, err := parseTimeNullable(r.ValidTo)
	if err != nil {
		return service.DiscountInput{}, err
	}
	return service.DiscountInput{
		Code:                 r.Code,
		Description:          r.Description,
		Type:                 r.Type,
		Value:                models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Value)),
		MinOrderAmount:       models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MinOrderAmount)),
		MaxDiscountAmount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(r.MaxDiscountAmount)),
		ValidFrom:            validFrom,
		ValidTo:              validTo,
		UsageLimit:           r.UsageLimit,
		PerCustomerLimit:     r.PerCustomerLimit,
		CustomerSegment:      r.CustomerSegment,
		ApplicableProducts:   r.ApplicableProducts,
		ApplicableCategories: r.ApplicableCategories,
		AutoApply:            r.AutoApply,
		IsActive:             r.IsActive,
	}, nil
}

func respondDiscountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDiscountNotFound):
		respondError(c, response.CodeNotFound, "discount not found", nil)
	case errors.Is(err, service.ErrDiscountInvalid):
		respondError(c, response.CodeBadRequest, "discount data is invalid", nil)
	case errors.Is(err, service.ErrDiscountExists):
		respondError(c, response.CodeBadRequest, "discount code already exists", nil)
	default:
		respondError(c, response.CodeInternal, "discount save failed", err)
	}
}

// CreateDiscount 创建优惠
func (h *Handler) CreateDiscount(c *gin.Context) {
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	discount, err := h.DiscountAdminService.Create(input)
	if err != nil {
		respondDiscountError(c, err)
		return
	}
	response.Success(c, discount)
}

// UpdateDiscount 更新优惠
func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "discount id is invalid", nil)
		return
	}
	var req DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	discount, err := h.DiscountAdminService.Update(uint(id), input)
	if err != nil {
		respondDiscountError(c, err)
		return
	}
	response.Success(c, discount)
}

// DeactivateDiscount 停用优惠
func (h *Handler) DeactivateDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "discount id is invalid", nil)
		return
	}
	if err := h.DiscountAdminService.Deactivate(uint(id)); err != nil {
		respondDiscountError(c, err)
		return
	}
	response.Success(c, gin.H{"deactivated": true})
}

// GetDiscount 获取优惠详情
func (h *Handler) GetDiscount(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "discount id is invalid", nil)
		return
	}
	discount, err := h.DiscountAdminService.Get(uint(id))
	if err != nil {
		respondDiscountError(c, err)
		return
	}
	response.Success(c, discount)
}

// ListDiscounts 获取优惠列表
func (h *Handler) ListDiscounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.DiscountListFilter{
		Page:     page,
		PageSize: pageSize,
		Code:     strings.TrimSpace(c.Query("code")),
		Type:     strings.TrimSpace(c.Query("type")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	discounts, total, err := h.DiscountAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "discount fetch failed", err)
		return
	}
	response.SuccessWithPage(c, discounts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
