package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gearmart-next/internal/models"
	"github.com/gearmart-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	categoryRepo := repository.NewCategoryRepository(db)
	productSvc := NewProductService(repository.NewProductRepository(db), categoryRepo)
	categorySvc := NewCategoryService(categoryRepo)
	return productSvc, categorySvc, db
}

func TestCreateProductNormalizesAndDefaults(t *testing.T) {
	productSvc, categorySvc, _ := setupProductServiceTest(t)
	category, err := categorySvc.CreateCategory(CategoryInput{Name: "Power Tools"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	product, err := productSvc.CreateProduct(ProductInput{
		CategoryID: category.ID,
		Name:       "  Cordless Drill  ",
		SKU:        "  pt-drill-18v ",
		Price:      models.NewMoneyFromDecimal(decimal.RequireFromString("129.99")),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if product.Name != "Cordless Drill" {
		t.Fatalf("expected trimmed name, got: %q", product.Name)
	}
	if product.SKU != "PT-DRILL-18V" {
		t.Fatalf("expected uppercased sku, got: %q", product.SKU)
	}
	if product.WarrantyPeriodMonths != 12 {
		t.Fatalf("expected 12-month warranty default, got: %d", product.WarrantyPeriodMonths)
	}
	if !product.IsActive {
		t.Fatalf("expected active by default")
	}
}

func TestCreateProductValidations(t *testing.T) {
	productSvc, categorySvc, _ := setupProductServiceTest(t)
	category, err := categorySvc.CreateCategory(CategoryInput{Name: "Hand Tools"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	price := models.NewMoneyFromDecimal(decimal.RequireFromString("10.00"))

	if _, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: " ", SKU: "X", Price: price}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for empty name, got: %v", err)
	}
	if _, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "X", SKU: " ", Price: price}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for empty sku, got: %v", err)
	}
	if _, err := productSvc.CreateProduct(ProductInput{
		CategoryID: category.ID, Name: "X", SKU: "NEG",
		Price: models.NewMoneyFromDecimal(decimal.RequireFromString("-1")),
	}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for negative price, got: %v", err)
	}
	if _, err := productSvc.CreateProduct(ProductInput{
		CategoryID: category.ID, Name: "X", SKU: "NEGSTOCK", Price: price, StockQuantity: -1,
	}); !errors.Is(err, ErrProductInvalid) {
		t.Fatalf("expected ErrProductInvalid for negative stock, got: %v", err)
	}
	if _, err := productSvc.CreateProduct(ProductInput{CategoryID: 999, Name: "X", SKU: "NOCAT", Price: price}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got: %v", err)
	}

	if _, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "First", SKU: "DUP", Price: price}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if _, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "Second", SKU: "dup", Price: price}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("expected ErrSKUExists, got: %v", err)
	}
}

func TestUpdateProductSKUConflictAndDeactivate(t *testing.T) {
	productSvc, categorySvc, _ := setupProductServiceTest(t)
	category, err := categorySvc.CreateCategory(CategoryInput{Name: "Workshop"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	price := models.NewMoneyFromDecimal(decimal.RequireFromString("50.00"))

	first, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "First", SKU: "WS-A", Price: price})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	second, err := productSvc.CreateProduct(ProductInput{CategoryID: category.ID, Name: "Second", SKU: "WS-B", Price: price})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if _, err := productSvc.UpdateProduct(second.ID, ProductInput{
		CategoryID: category.ID, Name: "Second", SKU: first.SKU, Price: price,
	}); !errors.Is(err, ErrSKUExists) {
		t.Fatalf("expected ErrSKUExists, got: %v", err)
	}

	inactive := false
	updated, err := productSvc.UpdateProduct(second.ID, ProductInput{
		CategoryID: category.ID, Name: "Second", SKU: "WS-B", Price: price, IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("expected product deactivated")
	}
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	productSvc, categorySvc, db := setupProductServiceTest(t)
	category, err := categorySvc.CreateCategory(CategoryInput{Name: "Scrap"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := productSvc.CreateProduct(ProductInput{
		CategoryID: category.ID, Name: "Doomed", SKU: "GONE",
		Price: models.NewMoneyFromDecimal(decimal.RequireFromString("1.00")),
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if err := productSvc.DeleteProduct(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := productSvc.GetProduct(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound after delete, got: %v", err)
	}

	// 软删除：数据仍在表中
	var count int64
	db.Unscoped().Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected soft-deleted row present, got count=%d", count)
	}
}

func TestCategoryCRUD(t *testing.T) {
	_, categorySvc, _ := setupProductServiceTest(t)

	if _, err := categorySvc.CreateCategory(CategoryInput{Name: "  "}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected error for blank name, got: %v", err)
	}

	category, err := categorySvc.CreateCategory(CategoryInput{Name: "Air Tools", Description: " compressors "})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Description != "compressors" {
		t.Fatalf("expected trimmed description, got: %q", category.Description)
	}

	inactive := false
	updated, err := categorySvc.UpdateCategory(category.ID, CategoryInput{Name: "Pneumatic Tools", IsActive: &inactive})
	if err != nil {
		t.Fatalf("update category failed: %v", err)
	}
	if updated.Name != "Pneumatic Tools" || updated.IsActive {
		t.Fatalf("unexpected category after update: %+v", updated)
	}

	active, err := categorySvc.ListCategories(true)
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active categories, got: %d", len(active))
	}

	if err := categorySvc.DeleteCategory(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if _, err := categorySvc.GetCategory(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound after delete, got: %v", err)
	}
}
