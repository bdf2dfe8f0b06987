package service

import (
	"context"
	"strings"
	"time"

	"github.com/pianao-store/internal/cache"

	"github.com/google/uuid"
)

const guestCartKeyPrefix = "guest_cart:"

// LocalCartItem 游客购物车条目，与浏览器本地存储的 JSON 结构一致
type LocalCartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// GuestCartStore 游客购物车存储，每个购物车 ID 对应一个 JSON 文档
type GuestCartStore struct {
	store cache.Store
	ttl   time.Duration
}

// NewGuestCartStore 创建游客购物车存储
func NewGuestCartStore(store cache.Store, ttl time.Duration) *GuestCartStore {
	return &GuestCartStore{store: store, ttl: ttl}
}

// NewGuestCartID 生成新的游客购物车 ID
func NewGuestCartID() string {
	return uuid.NewString()
}

// ValidGuestCartID 校验游客购物车 ID 格式
func ValidGuestCartID(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// List 读取游客购物车，不存在时返回空列表
func (g *GuestCartStore) List(ctx context.Context, cartID string) ([]LocalCartItem, error) {
	if !ValidGuestCartID(cartID) {
		return nil, ErrGuestCartID
	}
	var items []LocalCartItem
	if _, err := g.store.GetJSON(ctx, guestCartKey(cartID), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []LocalCartItem{}
	}
	return items, nil
}

// Add 商品数量加一，不存在时新增
func (g *GuestCartStore) Add(ctx context.Context, cartID string, productID uint) ([]LocalCartItem, error) {
	items, err := g.List(ctx, cartID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, LocalCartItem{ProductID: productID, Quantity: 1})
	}
	return items, g.save(ctx, cartID, items)
}

// SetQuantity 设置数量，数量小于等于 0 时移除
func (g *GuestCartStore) SetQuantity(ctx context.Context, cartID string, productID uint, quantity int) ([]LocalCartItem, error) {
	items, err := g.List(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		items = removeLocalItem(items, productID)
		return items, g.save(ctx, cartID, items)
	}
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, LocalCartItem{ProductID: productID, Quantity: quantity})
	}
	return items, g.save(ctx, cartID, items)
}

// Remove 移除商品
func (g *GuestCartStore) Remove(ctx context.Context, cartID string, productID uint) ([]LocalCartItem, error) {
	items, err := g.List(ctx, cartID)
	if err != nil {
		return nil, err
	}
	items = removeLocalItem(items, productID)
	return items, g.save(ctx, cartID, items)
}

// Clear 清空游客购物车
func (g *GuestCartStore) Clear(ctx context.Context, cartID string) error {
	if !ValidGuestCartID(cartID) {
		return ErrGuestCartID
	}
	return g.store.Del(ctx, guestCartKey(cartID))
}

func (g *GuestCartStore) save(ctx context.Context, cartID string, items []LocalCartItem) error {
	if len(items) == 0 {
		return g.store.Del(ctx, guestCartKey(cartID))
	}
	return g.store.SetJSON(ctx, guestCartKey(cartID), items, g.ttl)
}

func removeLocalItem(items []LocalCartItem, productID uint) []LocalCartItem {
	result := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			result = append(result, item)
		}
	}
	return result
}

func guestCartKey(cartID string) string {
	return guestCartKeyPrefix + strings.TrimSpace(cartID)
}
