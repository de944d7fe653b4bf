package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gearmart-next/internal/http/response"
	"github.com/gearmart-next/internal/queue"
	"github.com/gearmart-next/internal/repository"
	"github.com/gearmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListWarranties 获取保修记录列表
func (h *Handler) ListWarranties(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	productID, _ := strconv.ParseUint(c.Query("product_id"), 10, 64)
	orderID, _ := strconv.ParseUint(c.Query("order_id"), 10, 64)

	warranties, total, err := h.WarrantyService.ListWarranties(repository.WarrantyListFilter{
		Page:      page,
		PageSize:  pageSize,
		UserID:    uint(userID),
		ProductID: uint(productID),
		OrderID:   uint(orderID),
		Status:    strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "warranty fetch failed", err)
		return
	}
	response.SuccessWithPage(c, warranties, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetWarranty 获取保修详情
func (h *Handler) GetWarranty(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "warranty id is invalid", nil)
		return
	}
	warranty, err := h.WarrantyService.GetWarranty(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrWarrantyNotFound) {
			respondError(c, response.CodeNotFound, "warranty not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "warranty fetch failed", err)
		return
	}
	response.Success(c, warranty)
}

// VoidWarranty 作废保修
func (h *Handler) VoidWarranty(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "warranty id is invalid", nil)
		return
	}
	warranty, err := h.WarrantyService.VoidWarranty(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrWarrantyNotFound) {
			respondError(c, response.CodeNotFound, "warranty not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "warranty void failed", err)
		return
	}
	response.Success(c, warranty)
}

// ListExpiringWarranties 获取临期保修列表
func (h *Handler) ListExpiringWarranties(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	warranties, err := h.WarrantyService.ListExpiringSoon(days)
	if err != nil {
		respondError(c, response.CodeInternal, "warranty fetch failed", err)
		return
	}
	response.Success(c, gin.H{"items": warranties})
}

// RunWarrantySweep 手动触发保修过期扫描；队列可用时异步投递，否则同步执行
func (h *Handler) RunWarrantySweep(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	now := time.Now()
	if h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueWarrantySweep(queue.WarrantySweepPayload{Before: now}); err != nil {
			respondError(c, response.CodeInternal, "warranty sweep enqueue failed", err)
			return
		}
		requestLog(c).Infow("admin_warranty_sweep_enqueued", "admin_id", adminID, "before", now)
		response.Success(c, gin.H{"enqueued": true})
		return
	}
	expired, err := h.WarrantyService.ExpireOverdue(now)
	if err != nil {
		respondError(c, response.CodeInternal, "warranty sweep failed", err)
		return
	}
	requestLog(c).Infow("admin_warranty_sweep_triggered", "admin_id", adminID, "expired", expired)
	response.Success(c, gin.H{"expired": expired})
}
