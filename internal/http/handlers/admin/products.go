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

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	CategoryID           uint    `json:"category_id" binding:"required"`
	Name                 string  `json:"name" binding:"required"`
	SKU                  string  `json:"sku" binding:"required"`
	Description          string  `json:"description"`
	Price                float64 `json:"price" binding:"required"`
	StockQuantity        int     `json:"stock_quantity"`
	Color                string  `json:"color"`
	Size                 string  `json:"size"`
	SerialNumber         string  `json:"serial_number"`
	WarrantyPeriodMonths int     `json:"warranty_period_months"`
	ImageURL             string  `json:"image_url"`
	IsActive             *bool   `json:"is_active"`
	SortOrder            int     `json:"sort_order"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:           r.CategoryID,
		Name:                 r.Name,
		SKU:                  r.SKU,
		Description:          r.Description,
		Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(r.Price)),
		StockQuantity:        r.StockQuantity,
		Color:                r.Color,
		Size:                 r.Size,
		SerialNumber:         r.SerialNumber,
		WarrantyPeriodMonths: r.WarrantyPeriodMonths,
		ImageURL:             r.ImageURL,
		IsActive:             r.IsActive,
		SortOrder:            r.SortOrder,
	}
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "product not found", nil)
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "product data is invalid", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "category not found", nil)
	case errors.Is(err, service.ErrSKUExists):
		respondError(c, response.CodeBadRequest, "sku already exists", nil)
	default:
		respondError(c, response.CodeInternal, "product save failed", err)
	}
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.CreateProduct(req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id is invalid", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	product, err := h.ProductService.UpdateProduct(uint(id), req.toInput())
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id is invalid", nil)
		return
	}
	if err := h.ProductService.DeleteProduct(uint(id)); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "product id is invalid", nil)
		return
	}
	product, err := h.ProductService.GetProduct(uint(id))
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// ListProducts 获取商品列表（含下架商品）
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	products, total, err := h.ProductService.ListProducts(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: uint(categoryID),
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "product fetch failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
