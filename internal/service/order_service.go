package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/queue"
	"github.com/pianao-store/internal/repository"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// OrderEmailSender 订单邮件发送方
type OrderEmailSender interface {
	SendOrderConfirmation(ctx context.Context, req OrderEmailRequest, locale string) (map[string]interface{}, error)
}

// OrderEmailEnqueuer 订单邮件异步任务投递方
type OrderEmailEnqueuer interface {
	Enabled() bool
	EnqueueOrderConfirmationEmail(payload queue.OrderConfirmationEmailPayload, opts ...asynq.Option) error
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	UserID  uint
	Email   string
	Address ShippingAddress
	Locale  string
}

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	email       OrderEmailSender
	queue       OrderEmailEnqueuer
	emailWG     sync.WaitGroup
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	email OrderEmailSender,
	queueClient OrderEmailEnqueuer,
) *OrderService {
	return &OrderService{
		cfg:         cfg,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		email:       email,
		queue:       queueClient,
	}
}

// PlaceOrder 按购物车下单：写入订单与订单项、清空购物车、尽力发送确认邮件
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if err := input.Address.Validate(); err != nil {
		return nil, err
	}
	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	items, total, err := buildOrderLines(cartItems)
	if err != nil {
		return nil, err
	}

	address := input.Address.Normalize()
	order := &models.Order{
		OrderNo:      s.generateOrderNo(),
		UserID:       input.UserID,
		Status:       constants.OrderStatusPendingPayment,
		TotalAmount:  total,
		ContactEmail: strings.TrimSpace(input.Email),
		FullName:     address.FullName,
		PostalCode:   address.PostalCode,
		Prefecture:   address.Prefecture,
		City:         address.City,
		AddressLine1: address.AddressLine1,
		AddressLine2: address.AddressLine2,
		PhoneNumber:  address.PhoneNumber,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return orderRepo.CreateItems(order.ID, items)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, ErrOrderCreateFailed
	}
	order.Items = items

	if err := s.cartRepo.ClearByUser(input.UserID); err != nil {
		logger.Warnw("order_cart_clear_failed", "order_id", order.ID, "user_id", input.UserID, "error", err)
	}

	s.dispatchConfirmationEmail(ctx, order, input.Locale)
	return order, nil
}

// dispatchConfirmationEmail 队列可用时投递任务，否则在后台 goroutine 发送；失败只记录日志
func (s *OrderService) dispatchConfirmationEmail(ctx context.Context, order *models.Order, locale string) {
	if s.queue != nil && s.queue.Enabled() {
		err := s.queue.EnqueueOrderConfirmationEmail(queue.OrderConfirmationEmailPayload{OrderID: order.ID, Locale: locale})
		if err == nil {
			return
		}
		logger.Warnw("order_email_enqueue_failed", "order_id", order.ID, "error", err)
	}

	// 脱离请求上下文，请求结束后仍继续发送
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.emailTimeout())
	s.emailWG.Add(1)
	go func() {
		defer s.emailWG.Done()
		defer cancel()
		if err := s.sendConfirmationEmail(sendCtx, order, locale); err != nil {
			logger.Warnw("order_email_send_failed", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
		}
	}()
}

// WaitEmails 等待后台发送中的确认邮件，ctx 结束时提前返回
func (s *OrderService) WaitEmails(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.emailWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warnw("order_email_wait_aborted", "error", ctx.Err())
	}
}

func (s *OrderService) emailTimeout() time.Duration {
	if s.cfg == nil {
		return config.EmailConfig{}.Timeout()
	}
	return s.cfg.Email.Timeout()
}

// SendConfirmationEmail 按订单 ID 发送确认邮件（队列任务使用）
func (s *OrderService) SendConfirmationEmail(ctx context.Context, orderID uint, locale string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.sendConfirmationEmail(ctx, order, locale)
}

func (s *OrderService) sendConfirmationEmail(ctx context.Context, order *models.Order, locale string) error {
	if s.email == nil {
		return ErrEmailServiceDisabled
	}
	to := strings.TrimSpace(order.ContactEmail)
	if to == "" && s.userRepo != nil {
		user, err := s.userRepo.GetByID(order.UserID)
		if err != nil {
			return err
		}
		if user != nil {
			to = user.Email
		}
	}
	req := OrderEmailRequest{
		Email: to,
		Name:  s.resolveRecipientName(order),
		Total: order.TotalAmount,
		Items: make([]OrderEmailItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		req.Items = append(req.Items, OrderEmailItem{
			Title:    item.Title,
			Quantity: item.Quantity,
			Price:    item.PriceAtPurchase,
		})
	}
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	_, err := s.email.SendOrderConfirmation(ctx, req, locale)
	return err
}

// 优先使用昵称，其次收件人姓名
func (s *OrderService) resolveRecipientName(order *models.Order) string {
	if s.profileRepo != nil {
		profile, err := s.profileRepo.GetByUserID(order.UserID)
		if err == nil && profile != nil && strings.TrimSpace(profile.Nickname) != "" {
			return strings.TrimSpace(profile.Nickname)
		}
	}
	return order.FullName
}

// ListByUser 我的订单（新订单在前）
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
}

// GetByUser 获取用户订单详情
func (s *OrderService) GetByUser(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	filter.OrderNo = strings.TrimSpace(filter.OrderNo)
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin 管理端订单详情
func (s *OrderService) GetAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus 管理端变更订单状态
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	order, err := s.GetAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if !isOrderTransitionAllowed(order.Status, status) {
		return nil, ErrOrderStatusInvalid
	}
	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch status {
	case constants.OrderStatusPaid:
		updates["paid_at"] = now
	case constants.OrderStatusCanceled:
		updates["canceled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(orderID, status, updates); err != nil {
		return nil, err
	}
	return s.GetAdmin(orderID)
}

var orderTransitions = map[string][]string{
	constants.OrderStatusPendingPayment: {constants.OrderStatusPaid, constants.OrderStatusCanceled},
	constants.OrderStatusPaid:           {constants.OrderStatusCompleted},
}

func isOrderTransitionAllowed(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// buildOrderLines 以当前商品价格快照生成订单项，合计 = Σ 单价 × 数量
func buildOrderLines(cartItems []models.CartItem) ([]models.OrderItem, models.Money, error) {
	total := models.NewMoneyFromInt(0)
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		product := cartItem.Product
		if product == nil || !product.IsActive || cartItem.Quantity <= 0 {
			continue
		}
		item := models.OrderItem{
			ProductID:       product.ID,
			Title:           product.Title,
			Image:           product.Image,
			Quantity:        cartItem.Quantity,
			PriceAtPurchase: product.Price,
		}
		total = total.Add(item.Subtotal())
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, models.Money{}, ErrCartEmpty
	}
	return items, total, nil
}

func (s *OrderService) generateOrderNo() string {
	prefix := "PN"
	if s.cfg != nil && strings.TrimSpace(s.cfg.Order.NoPrefix) != "" {
		prefix = strings.TrimSpace(s.cfg.Order.NoPrefix)
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return prefix + time.Now().Format("20060102150405") + suffix
}
