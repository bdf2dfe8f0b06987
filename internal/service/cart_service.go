package service

import (
	"context"
	"time"

	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	Subtotal  models.Money    `json:"subtotal"`
	Product   *models.Product `json:"product"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items      []CartItemDetail `json:"items"`
	TotalPrice models.Money     `json:"total_price"`
	TotalItems int              `json:"total_items"`
}

// ReconcileInput 登录时合并游客购物车的输入
type ReconcileInput struct {
	UserID      uint
	GuestCartID string
	// Items 由客户端直接提交的本地购物车，非空时优先于 GuestCartID
	Items []LocalCartItem
}

// ReconcileResult 合并结果
type ReconcileResult struct {
	Merged    bool             `json:"merged"`
	Discarded int              `json:"discarded"`
	Items     []CartItemDetail `json:"items"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	guestCarts  *GuestCartStore
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, guestCarts *GuestCartStore) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		guestCarts:  guestCarts,
	}
}

// ListByUser 获取用户购物车，已下架商品会被移除
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteByUserAndProduct(userID, item.ProductID)
			continue
		}
		details = append(details, newCartItemDetail(product, item.Quantity))
	}
	return details, nil
}

// AddItem 加入购物车，已存在时数量加一
func (s *CartService) AddItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	if _, err := s.activeProduct(productID); err != nil {
		return err
	}
	quantity := 1
	existing, err := s.cartRepo.Get(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		quantity = existing.Quantity + 1
	}
	return s.upsert(userID, productID, quantity)
}

// UpdateQuantity 更新数量，小于等于 0 视为删除
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteByUserAndProduct(userID, productID)
	}
	if _, err := s.activeProduct(productID); err != nil {
		return err
	}
	return s.upsert(userID, productID, quantity)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, productID uint) error {
	if userID == 0 || productID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}

// ListGuest 获取游客购物车详情
func (s *CartService) ListGuest(ctx context.Context, cartID string) ([]CartItemDetail, error) {
	items, err := s.guestCarts.List(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.resolveLocalItems(items)
}

// AddGuestItem 游客加入购物车
func (s *CartService) AddGuestItem(ctx context.Context, cartID string, productID uint) ([]CartItemDetail, error) {
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	if _, err := s.activeProduct(productID); err != nil {
		return nil, err
	}
	items, err := s.guestCarts.Add(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}
	return s.resolveLocalItems(items)
}

// UpdateGuestQuantity 游客更新数量，小于等于 0 视为删除
func (s *CartService) UpdateGuestQuantity(ctx context.Context, cartID string, productID uint, quantity int) ([]CartItemDetail, error) {
	if productID == 0 {
		return nil, ErrInvalidCartItem
	}
	if quantity > 0 {
		if _, err := s.activeProduct(productID); err != nil {
			return nil, err
		}
	}
	items, err := s.guestCarts.SetQuantity(ctx, cartID, productID, quantity)
	if err != nil {
		return nil, err
	}
	return s.resolveLocalItems(items)
}

// RemoveGuestItem 游客删除购物车项
func (s *CartService) RemoveGuestItem(ctx context.Context, cartID string, productID uint) ([]CartItemDetail, error) {
	items, err := s.guestCarts.Remove(ctx, cartID, productID)
	if err != nil {
		return nil, err
	}
	return s.resolveLocalItems(items)
}

// ClearGuest 清空游客购物车
func (s *CartService) ClearGuest(ctx context.Context, cartID string) error {
	return s.guestCarts.Clear(ctx, cartID)
}

// Reconcile 登录后合并游客购物车：远端为空时写入本地条目，否则以远端为准；本地购物车总是被清空
func (s *CartService) Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidCartItem
	}

	local := input.Items
	if len(local) == 0 && input.GuestCartID != "" {
		stored, err := s.guestCarts.List(ctx, input.GuestCartID)
		if err != nil {
			return nil, err
		}
		local = stored
	}
	local = mergeLocalItems(local)

	remoteCount, err := s.cartRepo.CountByUser(input.UserID)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{}
	if remoteCount == 0 && len(local) > 0 {
		for _, item := range local {
			product, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil || !product.IsActive {
				result.Discarded++
				continue
			}
			if err := s.upsert(input.UserID, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
			// 至少写入一条才算合并
			result.Merged = true
		}
	} else {
		result.Discarded = len(local)
	}

	if input.GuestCartID != "" {
		if err := s.guestCarts.Clear(ctx, input.GuestCartID); err != nil {
			logger.Warnw("guest_cart_clear_failed", "guest_cart_id", input.GuestCartID, "error", err)
		}
	}

	items, err := s.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	result.Items = items
	return result, nil
}

// Summarize 计算购物车合计
func Summarize(items []CartItemDetail) CartSummary {
	summary := CartSummary{Items: items, TotalPrice: models.NewMoneyFromInt(0)}
	if summary.Items == nil {
		summary.Items = []CartItemDetail{}
	}
	for _, item := range items {
		summary.TotalPrice = summary.TotalPrice.Add(item.Subtotal)
		summary.TotalItems += item.Quantity
	}
	return summary
}

func (s *CartService) activeProduct(productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

func (s *CartService) upsert(userID, productID uint, quantity int) error {
	now := time.Now()
	return s.cartRepo.Upsert(&models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *CartService) resolveLocalItems(items []LocalCartItem) ([]CartItemDetail, error) {
	details := make([]CartItemDetail, 0, len(items))
	if len(items) == 0 {
		return details, nil
	}
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok || !product.IsActive || item.Quantity <= 0 {
			continue
		}
		details = append(details, newCartItemDetail(product, item.Quantity))
	}
	return details, nil
}

// 同一商品合并数量，丢弃数量非正的条目
func mergeLocalItems(items []LocalCartItem) []LocalCartItem {
	merged := make([]LocalCartItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func newCartItemDetail(product *models.Product, quantity int) CartItemDetail {
	return CartItemDetail{
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: product.Price,
		Subtotal:  product.Price.Mul(quantity),
		Product:   product,
	}
}
