package service

import (
	"strings"
	"time"

	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"
)

// InventoryService 库存档案服务（在役设备的双轨保修管理）
type InventoryService struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryService 创建库存档案服务
func NewInventoryService(inventoryRepo repository.InventoryRepository) *InventoryService {
	return &InventoryService{inventoryRepo: inventoryRepo}
}

// InventoryItemInput 创建/更新库存档案输入
type InventoryItemInput struct {
	Name                  string
	SerialNumber          string
	Status                string
	Location              string
	PurchaseDate          *time.Time
	HasProductWarranty    bool
	ProductWarrantyMonths int
	ProductWarrantyStart  *time.Time
	HasMotorWarranty      bool
	MotorWarrantyMonths   int
	MotorWarrantyStart    *time.Time
	Notes                 string
}

// applyWarrantyTracks 按轨道计算保修截止日期；起始日期缺省为购入日期。
func applyWarrantyTracks(item *models.InventoryItem, input InventoryItemInput) {
	item.HasProductWarranty = input.HasProductWarranty
	item.ProductWarrantyMonths = 0
	item.ProductWarrantyStart = nil
	item.ProductWarrantyEnd = nil
	if input.HasProductWarranty && input.ProductWarrantyMonths > 0 {
		start := input.ProductWarrantyStart
		if start == nil {
			start = input.PurchaseDate
		}
		if start != nil {
			end := start.AddDate(0, input.ProductWarrantyMonths, 0)
			item.ProductWarrantyMonths = input.ProductWarrantyMonths
			item.ProductWarrantyStart = start
			item.ProductWarrantyEnd = &end
		}
	}

	item.HasMotorWarranty = input.HasMotorWarranty
	item.MotorWarrantyMonths = 0
	item.MotorWarrantyStart = nil
	item.MotorWarrantyEnd = nil
	if input.HasMotorWarranty && input.MotorWarrantyMonths > 0 {
		start := input.MotorWarrantyStart
		if start == nil {
			start = input.PurchaseDate
		}
		if start != nil {
			end := start.AddDate(0, input.MotorWarrantyMonths, 0)
			item.MotorWarrantyMonths = input.MotorWarrantyMonths
			item.MotorWarrantyStart = start
			item.MotorWarrantyEnd = &end
		}
	}
}

// CreateItem 创建库存档案
func (s *InventoryService) CreateItem(input InventoryItemInput) (*models.InventoryItem, error) {
	name := strings.TrimSpace(input.Name)
	serial := strings.TrimSpace(input.SerialNumber)
	if name == "" || serial == "" {
		return nil, ErrInventoryItemInvalid
	}

	existing, err := s.inventoryRepo.GetBySerialNumber(serial)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSerialNumberExists
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.InventoryStatusInService
	}
	item := &models.InventoryItem{
		Name:         name,
		SerialNumber: serial,
		Status:       status,
		Location:     strings.TrimSpace(input.Location),
		PurchaseDate: input.PurchaseDate,
		Notes:        input.Notes,
	}
	applyWarrantyTracks(item, input)

	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem 更新库存档案
func (s *InventoryService) UpdateItem(id uint, input InventoryItemInput) (*models.InventoryItem, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	serial := strings.TrimSpace(input.SerialNumber)
	if serial != "" && serial != item.SerialNumber {
		existing, err := s.inventoryRepo.GetBySerialNumber(serial)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSerialNumberExists
		}
		item.SerialNumber = serial
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if status := strings.TrimSpace(input.Status); status != "" {
		item.Status = status
	}
	item.Location = strings.TrimSpace(input.Location)
	item.PurchaseDate = input.PurchaseDate
	item.Notes = input.Notes
	applyWarrantyTracks(item, input)

	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem 根据ID获取库存档案
func (s *InventoryService) GetItem(id uint) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInventoryItemNotFound
	}
	return item, nil
}

// ListItems 获取库存档案列表
func (s *InventoryService) ListItems(filter repository.InventoryListFilter) ([]models.InventoryItem, int64, error) {
	return s.inventoryRepo.List(filter)
}

// DeleteItem 删除库存档案
func (s *InventoryService) DeleteItem(id uint) error {
	if _, err := s.GetItem(id); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(id)
}

// InventoryWarrantySummary 设备保修状态汇总
type InventoryWarrantySummary struct {
	ItemID               uint   `json:"item_id"`
	SerialNumber         string `json:"serial_number"`
	ProductWarrantyValid bool   `json:"product_warranty_valid"`
	ProductDaysRemaining int    `json:"product_days_remaining"`
	MotorWarrantyValid   bool   `json:"motor_warranty_valid"`
	MotorDaysRemaining   int    `json:"motor_days_remaining"`
	AnyValid             bool   `json:"any_valid"`
	MinDaysRemaining     int    `json:"min_days_remaining"`
}

// WarrantySummary 计算设备双轨保修汇总：逐轨道有效性与剩余天数，
// 综合值取有效轨道剩余天数的最小值。
func (s *InventoryService) WarrantySummary(id uint) (*InventoryWarrantySummary, error) {
	item, err := s.GetItem(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &InventoryWarrantySummary{
		ItemID:               item.ID,
		SerialNumber:         item.SerialNumber,
		ProductWarrantyValid: item.ProductWarrantyValid(now),
		MotorWarrantyValid:   item.MotorWarrantyValid(now),
		AnyValid:             item.HasAnyValidWarranty(now),
		MinDaysRemaining:     item.WarrantyDaysRemaining(now),
	}
	if summary.ProductWarrantyValid {
		summary.ProductDaysRemaining = int(item.ProductWarrantyEnd.Sub(now).Hours() / 24)
	}
	if summary.MotorWarrantyValid {
		summary.MotorDaysRemaining = int(item.MotorWarrantyEnd.Sub(now).Hours() / 24)
	}
	return summary, nil
}
