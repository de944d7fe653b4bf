package main

import (
	"fmt"
	"time"

	"github.com/gearmart-next/internal/config"
	"github.com/gearmart-next/internal/constants"
	"github.com/gearmart-next/internal/logger"
	"github.com/gearmart-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Power Tools", Description: "Drills, saws, grinders, and other corded or cordless power tools", IsActive: true, SortOrder: 1},
		{Name: "Hand Tools", Description: "Wrenches, screwdrivers, pliers, and precision hand tools", IsActive: true, SortOrder: 2},
		{Name: "Workshop Equipment", Description: "Bench-top machinery, compressors, and shop fixtures", IsActive: true, SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("name IN ?", []string{"Power Tools", "Hand Tools", "Workshop Equipment"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}
	powerToolsID := categoryIDs["Power Tools"]
	handToolsID := categoryIDs["Hand Tools"]
	workshopID := categoryIDs["Workshop Equipment"]

	// 添加商品
	products := []models.Product{
		{
			CategoryID:           powerToolsID,
			Name:                 "Cordless Drill Driver 18V",
			SKU:                  "PT-DRILL-18V",
			Description:          "Brushless 18V drill driver with two-speed gearbox and 13mm keyless chuck.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99)),
			StockQuantity:        50,
			Color:                "Blue",
			Size:                 "18V",
			SerialNumber:         "DRL18-2026",
			WarrantyPeriodMonths: 24,
			IsActive:             true,
			SortOrder:            1,
		},
		{
			CategoryID:           powerToolsID,
			Name:                 "Angle Grinder 125mm",
			SKU:                  "PT-GRIND-125",
			Description:          "850W angle grinder with tool-free guard adjustment and restart protection.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(79.50)),
			StockQuantity:        35,
			Color:                "Green",
			Size:                 "125mm",
			SerialNumber:         "GRD125-2026",
			WarrantyPeriodMonths: 12,
			IsActive:             true,
			SortOrder:            2,
		},
		{
			CategoryID:           powerToolsID,
			Name:                 "Circular Saw 1400W",
			SKU:                  "PT-SAW-1400",
			Description:          "1400W circular saw, 66mm cut depth, with laser guide and dust port.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(159.00)),
			StockQuantity:        20,
			SerialNumber:         "SAW1400-2026",
			WarrantyPeriodMonths: 24,
			IsActive:             true,
			SortOrder:            3,
		},
		{
			CategoryID:           handToolsID,
			Name:                 "Socket Wrench Set 108pc",
			SKU:                  "HT-SOCKET-108",
			Description:          "108-piece chrome vanadium socket set with 72-tooth ratchets.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(89.90)),
			StockQuantity:        60,
			WarrantyPeriodMonths: 12,
			IsActive:             true,
			SortOrder:            1,
		},
		{
			CategoryID:           handToolsID,
			Name:                 "Precision Screwdriver Kit",
			SKU:                  "HT-SCREW-PRE",
			Description:          "64-in-1 precision screwdriver kit for electronics and fine mechanics.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(24.99)),
			StockQuantity:        120,
			WarrantyPeriodMonths: 6,
			IsActive:             true,
			SortOrder:            2,
		},
		{
			CategoryID:           workshopID,
			Name:                 "Bench Drill Press 500W",
			SKU:                  "WS-PRESS-500",
			Description:          "Bench-top drill press with 5-speed belt drive and tilting table.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(249.00)),
			StockQuantity:        10,
			SerialNumber:         "PRS500-2026",
			WarrantyPeriodMonths: 36,
			IsActive:             true,
			SortOrder:            1,
		},
		{
			CategoryID:           workshopID,
			Name:                 "Air Compressor 24L",
			SKU:                  "WS-COMP-24L",
			Description:          "24L oil-free air compressor, 8 bar, with quick-release coupling.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(189.00)),
			StockQuantity:        15,
			SerialNumber:         "CMP24-2026",
			WarrantyPeriodMonths: 24,
			IsActive:             true,
			SortOrder:            2,
		},
		{
			CategoryID:           workshopID,
			Name:                 "Retired Shop Vacuum",
			SKU:                  "WS-VAC-OLD",
			Description:          "Discontinued model, kept for reference only.",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(59.00)),
			StockQuantity:        0,
			WarrantyPeriodMonths: 12,
			IsActive:             false,
			SortOrder:            99,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := models.DB.Where("sku = ?", p.SKU).First(&existing).Error; err != nil {
			if err := models.DB.Create(&p).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", p.SKU, err)
			} else {
				stdLog.Printf("Created product: %s", p.SKU)
			}
		} else {
			stdLog.Printf("Product already exists: %s", p.SKU)
		}
	}

	// 添加演示用户
	seedUsers := []struct {
		Email     string
		Password  string
		FirstName string
		LastName  string
		Role      string
	}{
		{Email: "demo@gearmart.local", Password: "demo1234", FirstName: "Demo", LastName: "Customer", Role: constants.UserRoleCustomer},
		{Email: "jane@gearmart.local", Password: "demo1234", FirstName: "Jane", LastName: "Fletcher", Role: constants.UserRoleCustomer},
	}
	for _, u := range seedUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				stdLog.Printf("Failed to hash password for %s: %v", u.Email, err)
				continue
			}
			user := models.User{
				Email:        u.Email,
				PasswordHash: string(hash),
				FirstName:    u.FirstName,
				LastName:     u.LastName,
				Role:         u.Role,
				Status:       constants.UserStatusActive,
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			} else {
				stdLog.Printf("Created user: %s", u.Email)
			}
		} else {
			stdLog.Printf("User already exists: %s", u.Email)
		}
	}

	// 添加优惠活动
	now := time.Now()
	nextMonth := now.AddDate(0, 1, 0)
	nextQuarter := now.AddDate(0, 3, 0)
	discounts := []models.Discount{
		{
			Code:              "WELCOME10",
			Description:       "10% off for new customers",
			Type:              constants.DiscountTypePercentage,
			Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			MaxDiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			ValidFrom:         &now,
			ValidTo:           &nextQuarter,
			IsActive:          true,
		},
		{
			Code:           "TOOLS20",
			Description:    "$20 off orders over $150",
			Type:           constants.DiscountTypeFixedAmount,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(150)),
			ValidFrom:      &now,
			ValidTo:        &nextMonth,
			UsageLimit:     200,
			IsActive:       true,
		},
		{
			Code:        "FREESHIP",
			Description: "Free shipping on any order",
			Type:        constants.DiscountTypeFreeShipping,
			Value:       models.NewMoneyFromDecimal(decimal.Zero),
			ValidFrom:   &now,
			ValidTo:     &nextMonth,
			IsActive:    true,
			AutoApply:   true,
		},
	}
	for _, d := range discounts {
		var existing models.Discount
		if err := models.DB.Where("code = ?", d.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&d).Error; err != nil {
				stdLog.Printf("Failed to create discount %s: %v", d.Code, err)
			} else {
				stdLog.Printf("Created discount: %s", d.Code)
			}
		} else {
			stdLog.Printf("Discount already exists: %s", d.Code)
		}
	}

	// 添加库存档案（整机/电机双轨保修演示）
	pwStart := now.AddDate(-1, 0, 0)
	pwEnd := pwStart.AddDate(0, 24, 0)
	mwStart := now.AddDate(0, -6, 0)
	mwEnd := mwStart.AddDate(0, 12, 0)
	expiredEnd := now.AddDate(0, -1, 0)
	expiredStart := expiredEnd.AddDate(0, -12, 0)
	inventoryItems := []models.InventoryItem{
		{
			Name:                  "Shop Lathe #1",
			SerialNumber:          "LATHE-0001",
			Status:                constants.InventoryStatusInService,
			Location:              "Workshop A",
			PurchaseDate:          &pwStart,
			HasProductWarranty:    true,
			ProductWarrantyMonths: 24,
			ProductWarrantyStart:  &pwStart,
			ProductWarrantyEnd:    &pwEnd,
			HasMotorWarranty:      true,
			MotorWarrantyMonths:   12,
			MotorWarrantyStart:    &mwStart,
			MotorWarrantyEnd:      &mwEnd,
		},
		{
			Name:                "Dust Extractor #2",
			SerialNumber:        "DUST-0002",
			Status:              constants.InventoryStatusInService,
			Location:            "Workshop B",
			HasMotorWarranty:    true,
			MotorWarrantyMonths: 12,
			MotorWarrantyStart:  &expiredStart,
			MotorWarrantyEnd:    &expiredEnd,
			Notes:               "Motor warranty already lapsed",
		},
		{
			Name:         "Workbench #3",
			SerialNumber: "BENCH-0003",
			Status:       constants.InventoryStatusInService,
			Location:     "Workshop A",
			Notes:        "No warranty coverage on either track",
		},
	}
	for _, item := range inventoryItems {
		var existing models.InventoryItem
		if err := models.DB.Where("serial_number = ?", item.SerialNumber).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create inventory item %s: %v", item.SerialNumber, err)
			} else {
				stdLog.Printf("Created inventory item: %s", item.SerialNumber)
			}
		} else {
			stdLog.Printf("Inventory item already exists: %s", item.SerialNumber)
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 8 Products (含一件已下架商品)")
	fmt.Println("- 2 Demo customers (password: demo1234)")
	fmt.Println("- 3 Discounts (WELCOME10 / TOOLS20 / FREESHIP)")
	fmt.Println("- 3 Inventory items (双轨保修演示)")
}
