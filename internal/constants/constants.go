package constants

// 订单状态常量
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCompleted      = "completed"
	OrderStatusCanceled       = "canceled"
)

// 商品分类常量
const (
	ProductCategoryIntro     = "intro"
	ProductCategoryReading   = "reading"
	ProductCategoryRhythm    = "rhythm"
	ProductCategoryTechnique = "technique"
	ProductCategorySeasonal  = "seasonal"
)

// ProductCategories 全部可用分类（展示顺序）
var ProductCategories = []string{
	ProductCategoryIntro,
	ProductCategoryReading,
	ProductCategoryRhythm,
	ProductCategoryTechnique,
	ProductCategorySeasonal,
}

// 通知类型常量
const (
	NotificationTypeInfo       = "info"
	NotificationTypeAlert      = "alert"
	NotificationTypeNewArrival = "new_arrival"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 结算向导步骤
const (
	CheckoutStepTerms   = "terms"
	CheckoutStepAddress = "address"
	CheckoutStepConfirm = "confirm"
)

// 邮件发送方式
const (
	EmailProviderNone   = "none"
	EmailProviderResend = "resend"
	EmailProviderSMTP   = "smtp"
)

// 队列与任务
const (
	QueueDefault                = "default"
	QueueCritical               = "critical"
	TaskOrderConfirmationEmail  = "order:confirmation_email"
	OrderEmailTaskMaxRetry      = 3
	OrderEmailTaskTimeoutSecond = 30
)

// 请求头
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderGuestCartID = "X-Guest-Cart-ID"
)
