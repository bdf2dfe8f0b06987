package service

import "errors"

// 通用错误
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// 认证相关
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid token")
)

// 商品相关
var (
	ErrProductNotFound        = errors.New("product not found")
	ErrProductNotAvailable    = errors.New("product not available")
	ErrProductTitleRequired   = errors.New("product title required")
	ErrProductPriceInvalid    = errors.New("product price invalid")
	ErrProductCategoryInvalid = errors.New("product category invalid")
)

// 购物车相关
var (
	ErrInvalidCartItem = errors.New("invalid cart item")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrGuestCartID     = errors.New("invalid guest cart id")
)

// 结算相关
var (
	ErrTermsNotAccepted   = errors.New("terms of service not accepted")
	ErrAddressIncomplete  = errors.New("required address fields missing")
	ErrCheckoutStep       = errors.New("operation not allowed at current checkout step")
	ErrOrderCreateFailed  = errors.New("order create failed")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("order status transition invalid")
)

// 用户资料与通知
var (
	ErrNicknameRequired          = errors.New("nickname required")
	ErrNotificationNotFound      = errors.New("notification not found")
	ErrNotificationTitleRequired = errors.New("notification title required")
	ErrNotificationTypeInvalid   = errors.New("notification type invalid")
)

// 邮件相关
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
	ErrEmailRequestInvalid       = errors.New("email request invalid")
	ErrEmailSendFailed           = errors.New("email send failed")
)
