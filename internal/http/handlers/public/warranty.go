package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gearmart-next/internal/http/response"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/service"

	"github.com/gin-gonic/gin"
)

// WarrantyCheckView 保修公开查询响应
type WarrantyCheckView struct {
	WarrantyNo      string    `json:"warranty_no"`
	ProductName     string    `json:"product_name"`
	Status          string    `json:"status"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Valid           bool      `json:"valid"`
	ExpiringSoon    bool      `json:"expiring_soon"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
}

func buildWarrantyCheckView(w *models.Warranty) WarrantyCheckView {
	now := time.Now()
	view := WarrantyCheckView{
		WarrantyNo:      w.WarrantyNo,
		Status:          w.Status,
		StartDate:       w.StartDate,
		EndDate:         w.EndDate,
		Valid:           w.IsValid(now),
		ExpiringSoon:    w.IsExpiringSoon(now),
		DaysUntilExpiry: w.DaysUntilExpiry(now),
	}
	if w.Product != nil {
		view.ProductName = w.Product.Name
	}
	return view
}

// CheckWarranty 按保修编号公开查询保修状态
func (h *Handler) CheckWarranty(c *gin.Context) {
	no := strings.TrimSpace(c.Param("warranty_no"))
	if no == "" {
		respondError(c, response.CodeBadRequest, "warranty no is required", nil)
		return
	}
	warranty, err := h.WarrantyService.CheckWarranty(no)
	if err != nil {
		if errors.Is(err, service.ErrWarrantyNotFound) {
			respondError(c, response.CodeNotFound, "warranty not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "warranty check failed", err)
		return
	}
	response.Success(c, buildWarrantyCheckView(warranty))
}

// ListMyWarranties 获取当前用户的保修记录
func (h *Handler) ListMyWarranties(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	warranties, err := h.WarrantyService.ListUserWarranties(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "warranty fetch failed", err)
		return
	}
	response.Success(c, gin.H{"items": warranties})
}

// GetMyWarranty 获取当前用户的保修详情
func (h *Handler) GetMyWarranty(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "warranty id is invalid", nil)
		return
	}
	warranty, err := h.WarrantyService.GetWarrantyForUser(uint(id), uid)
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

// FileClaimRequest 保修报修请求
type FileClaimRequest struct {
	Notes string `json:"notes"`
}

// FileWarrantyClaim 用户提交保修报修
func (h *Handler) FileWarrantyClaim(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "warranty id is invalid", nil)
		return
	}
	var req FileClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	warranty, err := h.WarrantyService.FileClaim(uint(id), uid, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWarrantyNotFound):
			respondError(c, response.CodeNotFound, "warranty not found", nil)
		case errors.Is(err, service.ErrWarrantyInvalid):
			respondError(c, response.CodeBadRequest, "warranty is not valid for claims", nil)
		default:
			respondError(c, response.CodeInternal, "warranty claim failed", err)
		}
		return
	}
	response.Success(c, warranty)
}
