package service

import (
	"strings"

	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetProduct 根据ID获取商品
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts 获取商品列表
func (s *ProductService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	CategoryID           uint
	Name                 string
	SKU                  string
	Description          string
	Price                models.Money
	StockQuantity        int
	Color                string
	Size                 string
	SerialNumber         string
	WarrantyPeriodMonths int
	ImageURL             string
	IsActive             *bool
	SortOrder            int
}

func (s *ProductService) validateInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	if input.Name == "" || input.SKU == "" {
		return ErrProductInvalid
	}
	if input.Price.Decimal.LessThan(decimal.Zero) || input.StockQuantity < 0 {
		return ErrProductInvalid
	}
	if input.WarrantyPeriodMonths <= 0 {
		input.WarrantyPeriodMonths = 12
	}
	if input.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

// CreateProduct 创建商品
func (s *ProductService) CreateProduct(input ProductInput) (*models.Product, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	existing, err := s.productRepo.GetBySKU(input.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSKUExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	product := &models.Product{
		CategoryID:           input.CategoryID,
		Name:                 input.Name,
		SKU:                  input.SKU,
		Description:          input.Description,
		Price:                input.Price,
		StockQuantity:        input.StockQuantity,
		Color:                input.Color,
		Size:                 input.Size,
		SerialNumber:         input.SerialNumber,
		WarrantyPeriodMonths: input.WarrantyPeriodMonths,
		ImageURL:             input.ImageURL,
		IsActive:             isActive,
		SortOrder:            input.SortOrder,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}
	if input.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSKUExists
		}
	}

	product.CategoryID = input.CategoryID
	product.Name = input.Name
	product.SKU = input.SKU
	product.Description = input.Description
	product.Price = input.Price
	product.StockQuantity = input.StockQuantity
	product.Color = input.Color
	product.Size = input.Size
	product.SerialNumber = input.SerialNumber
	product.WarrantyPeriodMonths = input.WarrantyPeriodMonths
	product.ImageURL = input.ImageURL
	product.SortOrder = input.SortOrder
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct 删除商品（软删除）
func (s *ProductService) DeleteProduct(id uint) error {
	if _, err := s.GetProduct(id); err != nil {
		return err
	}
	return s.productRepo.Delete(id)
}
