package service

import "errors"

// 服务层哨兵错误，HTTP 层据此映射响应码。
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailInvalid      = errors.New("email invalid")
	ErrUserExists        = errors.New("user already exists")
	ErrUserDisabled      = errors.New("user disabled")
	ErrPasswordIncorrect = errors.New("password incorrect")
	ErrTokenInvalid      = errors.New("token invalid")

	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInvalid   = errors.New("product data invalid")
	ErrProductInactive  = errors.New("product inactive")
	ErrSKUExists        = errors.New("product sku already exists")

	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrQuantityInvalid   = errors.New("quantity invalid")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStateInvalid    = errors.New("order state does not allow this operation")
	ErrShippingInfoRequired = errors.New("shipping info required")

	ErrDiscountNotFound  = errors.New("discount code not found")
	ErrDiscountInvalid   = errors.New("discount code invalid")
	ErrDiscountMinAmount = errors.New("order total below discount minimum")
	ErrDiscountExists    = errors.New("discount code already exists")

	ErrWarrantyNotFound = errors.New("warranty not found")
	ErrWarrantyInvalid  = errors.New("warranty not valid for claim")

	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrInventoryItemInvalid  = errors.New("inventory item data invalid")
	ErrSerialNumberExists    = errors.New("serial number already exists")
)
