package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"
)

// CheckoutView 结算页数据
type CheckoutView struct {
	State CheckoutState `json:"state"`
	Cart  CartSummary   `json:"cart"`
}

// CheckoutService 结算向导服务，状态按用户保存在键值存储中
type CheckoutService struct {
	store    cache.Store
	ttl      time.Duration
	carts    *CartService
	profiles *ProfileService
	orders   *OrderService
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(store cache.Store, ttl time.Duration, carts *CartService, profiles *ProfileService, orders *OrderService) *CheckoutService {
	return &CheckoutService{
		store:    store,
		ttl:      ttl,
		carts:    carts,
		profiles: profiles,
		orders:   orders,
	}
}

// Get 获取当前结算状态与购物车；首次进入时用资料中的地址预填
func (s *CheckoutService) Get(ctx context.Context, userID uint) (*CheckoutView, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, err := s.carts.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return &CheckoutView{State: state, Cart: Summarize(items)}, nil
}

// AcceptTerms 第一步：同意条款
func (s *CheckoutService) AcceptTerms(ctx context.Context, userID uint, accepted bool) (*CheckoutState, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := state.AcceptTerms(accepted); err != nil {
		return &state, err
	}
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SubmitAddress 第二步：填写收货信息并同步到用户资料
func (s *CheckoutService) SubmitAddress(ctx context.Context, userID uint, address ShippingAddress) (*CheckoutState, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := state.SubmitAddress(address); err != nil {
		return &state, err
	}
	if _, err := s.profiles.SaveAddress(userID, state.Address); err != nil {
		return nil, err
	}
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Back 返回上一步
func (s *CheckoutService) Back(ctx context.Context, userID uint) (*CheckoutState, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Back()
	if err := s.save(ctx, userID, state); err != nil {
		return nil, err
	}
	return &state, nil
}

// PlaceOrder 第三步：确认下单，成功后重置向导
func (s *CheckoutService) PlaceOrder(ctx context.Context, userID uint, email, locale string) (*models.Order, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.ReadyToPlace() {
		return nil, ErrCheckoutStep
	}
	order, err := s.orders.PlaceOrder(ctx, PlaceOrderInput{
		UserID:  userID,
		Email:   email,
		Address: state.Address,
		Locale:  locale,
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Del(ctx, checkoutKey(userID)); err != nil {
		logger.Warnw("checkout_state_reset_failed", "user_id", userID, "error", err)
	}
	return order, nil
}

// Reset 放弃当前结算
func (s *CheckoutService) Reset(ctx context.Context, userID uint) error {
	return s.store.Del(ctx, checkoutKey(userID))
}

func (s *CheckoutService) load(ctx context.Context, userID uint) (CheckoutState, error) {
	if userID == 0 {
		return CheckoutState{}, ErrInvalidInput
	}
	var state CheckoutState
	hit, err := s.store.GetJSON(ctx, checkoutKey(userID), &state)
	if err != nil {
		return CheckoutState{}, err
	}
	if hit && isCheckoutStepValid(state.Step) {
		return state, nil
	}
	state = NewCheckoutState()
	profile, err := s.profiles.GetOrCreate(userID)
	if err != nil {
		return CheckoutState{}, err
	}
	state.Address = AddressOf(profile)
	return state, nil
}

func (s *CheckoutService) save(ctx context.Context, userID uint, state CheckoutState) error {
	return s.store.SetJSON(ctx, checkoutKey(userID), state, s.ttl)
}

func checkoutKey(userID uint) string {
	return fmt.Sprintf("checkout:%d", userID)
}
