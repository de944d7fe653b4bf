package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gearmart-next/internal/http/response"
	"github.com/gearmart-next/internal/repository"
	"github.com/gearmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryItemRequest 库存档案创建/更新请求
type InventoryItemRequest struct {
	Name                  string `json:"name" binding:"required"`
	SerialNumber          string `json:"serial_number" binding:"required"`
	Status                string `json:"status"`
	Location              string `json:"location"`
	PurchaseDate          string `json:"purchase_date"`
	HasProductWarranty    bool   `json:"has_product_warranty"`
	ProductWarrantyMonths int    `json:"product_warranty_months"`
	ProductWarrantyStart  string `json:"product_warranty_start"`
	HasMotorWarranty      bool   `json:"has_motor_warranty"`
	MotorWarrantyMonths   int    `json:"motor_warranty_months"`
	MotorWarrantyStart    string `json:"motor_warranty_start"`
	Notes                 string `json:"notes"`
}

func (r InventoryItemRequest) toInput() (service.InventoryItemInput, error) {
	purchaseDate, err := parseTimeNullable(r.PurchaseDate)
	if err != nil {
		return service.InventoryItemInput{}, err
	}
	productStart, err := parseTimeNullable(r.ProductWarrantyStart)
	if err != nil {
		return service.InventoryItemInput{}, err
	}
	motorStart, err := parseTimeNullable(r.MotorWarrantyStart)
	if err != nil {
		return service.InventoryItemInput{}, err
	}
	return service.InventoryItemInput{
		Name:                  r.Name,
		SerialNumber:          r.SerialNumber,
		Status:                r.Status,
		Location:              r.Location,
		PurchaseDate:          purchaseDate,
		HasProductWarranty:    r.HasProductWarranty,
		ProductWarrantyMonths: r.ProductWarrantyMonths,
		ProductWarrantyStart:  productStart,
		HasMotorWarranty:      r.HasMotorWarranty,
		MotorWarrantyMonths:   r.MotorWarrantyMonths,
		MotorWarrantyStart:    motorStart,
		Notes:                 r.Notes,
	}, nil
}

func respondInventoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInventoryItemNotFound):
		respondError(c, response.CodeNotFound, "inventory item not found", nil)
	case errors.Is(err, service.ErrInventoryItemInvalid):
		respondError(c, response.CodeBadRequest, "inventory item data is invalid", nil)
	case errors.Is(err, service.ErrSerialNumberExists):
		respondError(c, response.CodeBadRequest, "serial number already exists", nil)
	default:
		respondError(c, response.CodeInternal, "inventory save failed", err)
	}
}

// CreateInventoryItem 创建库存档案
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	item, err := h.InventoryService.CreateItem(input)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateInventoryItem 更新库存档案
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "inventory item id is invalid", nil)
		return
	}
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	item, err := h.InventoryService.UpdateItem(uint(id), input)
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// GetInventoryItem 获取库存档案详情
func (h *Handler) GetInventoryItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "inventory item id is invalid", nil)
		return
	}
	item, err := h.InventoryService.GetItem(uint(id))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, item)
}

// ListInventoryItems 获取库存档案列表
func (h *Handler) ListInventoryItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.InventoryService.ListItems(repository.InventoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "inventory fetch failed", err)
		return
	}
	response.SuccessWithPage(c, items, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// DeleteInventoryItem 删除库存档案
func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "inventory item id is invalid", nil)
		return
	}
	if err := h.InventoryService.DeleteItem(uint(id)); err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetInventoryWarrantySummary 获取库存档案的保修概览
func (h *Handler) GetInventoryWarrantySummary(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "inventory item id is invalid", nil)
		return
	}
	summary, err := h.InventoryService.WarrantySummary(uint(id))
	if err != nil {
		respondInventoryError(c, err)
		return
	}
	response.Success(c, summary)
}
