package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	// 后台邮件 goroutine 也会读库，单连接避免共享缓存锁冲突
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createServiceTestProduct(t *testing.T, db *gorm.DB, title string, price int64) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    title,
		Price:    models.NewMoneyFromInt(price),
		Category: constants.ProductCategoryIntro,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func createServiceTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "x", Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

type stubEmailSender struct {
	mu          sync.Mutex
	err         error
	requests    []OrderEmailRequest
	hasDeadline bool
	// release 非空时发送会阻塞到其关闭
	release chan struct{}
}

func (s *stubEmailSender) SendOrderConfirmation(ctx context.Context, req OrderEmailRequest, _ string) (map[string]interface{}, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, s.hasDeadline = ctx.Deadline()
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return map[string]interface{}{"id": "stub"}, nil
}

type testServices struct {
	db       *gorm.DB
	store    *cache.MemoryStore
	carts    *CartService
	profiles *ProfileService
	orders   *OrderService
	checkout *CheckoutService
	email    *stubEmailSender
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := openServiceTestDB(t)
	store := cache.NewMemoryStore()
	cfg := &config.Config{}
	cfg.Order.NoPrefix = "PN"

	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	email := &stubEmailSender{}

	carts := NewCartService(cartRepo, productRepo, NewGuestCartStore(store, cfg.Cart.GuestTTL()))
	profiles := NewProfileService(profileRepo)
	orders := NewOrderService(cfg, repository.NewOrderRepository(db), cartRepo, repository.NewUserRepository(db), profileRepo, email, nil)
	checkout := NewCheckoutService(store, cfg.Checkout.StateTTL(), carts, profiles, orders)
	// 先于数据库关闭执行
	t.Cleanup(func() { orders.WaitEmails(context.Background()) })
	return &testServices{
		db:       db,
		store:    store,
		carts:    carts,
		profiles: profiles,
		orders:   orders,
		checkout: checkout,
		email:    email,
	}
}

func validTestAddress() ShippingAddress {
	return ShippingAddress{
		FullName:     "山田 花子",
		PostalCode:   "150-0001",
		Prefecture:   "東京都",
		City:         "渋谷区",
		AddressLine1: "神宮前1-2-3",
		PhoneNumber:  "090-1234-5678",
	}
}
