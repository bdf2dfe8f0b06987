package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/provider"
	"github.com/pianao-store/internal/queue"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T, emailCfg config.EmailConfig) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{Email: emailCfg}
	return NewConsumer(provider.NewContainerWith(cfg, db, nil, nil)), db
}

func createWorkerTestOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()
	user := &models.User{Email: "buyer@example.com", PasswordHash: "x", Status: constants.UserStatusActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	order := &models.Order{
		OrderNo:     "PN-TEST-1",
		UserID:      user.ID,
		Status:      constants.OrderStatusPendingPayment,
		TotalAmount: models.NewMoneyFromInt(1200),
		FullName:    "山田 花子",
		Items: []models.OrderItem{
			{ProductID: 1, Title: "ドレミカード", Quantity: 1, PriceAtPurchase: models.NewMoneyFromInt(1200)},
		},
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestHandleOrderConfirmationEmailSends(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"id":"ok"}`))
	}))
	defer server.Close()

	consumer, db := setupWorkerTest(t, config.EmailConfig{
		Provider: constants.EmailProviderResend,
		From:     "shop@example.com",
		Resend:   config.ResendConfig{APIURL: server.URL, APIKey: "re_test"},
	})
	order := createWorkerTestOrder(t, db)

	task, err := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: order.ID})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one provider call, got %d", calls)
	}
}

func TestHandleOrderConfirmationEmailRetriesOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	consumer, db := setupWorkerTest(t, config.EmailConfig{
		Provider: constants.EmailProviderResend,
		From:     "shop@example.com",
		Resend:   config.ResendConfig{APIURL: server.URL, APIKey: "re_test"},
	})
	order := createWorkerTestOrder(t, db)
	task, _ := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: order.ID})
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err == nil {
		t.Fatalf("provider failure should be retried")
	}
}

func TestHandleOrderConfirmationEmailDropsPermanentFailures(t *testing.T) {
	consumer, db := setupWorkerTest(t, config.EmailConfig{Provider: constants.EmailProviderNone})
	order := createWorkerTestOrder(t, db)

	task, _ := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: order.ID})
	if err := consumer.handleOrderConfirmationEmail(context.Background(), task); err != nil {
		t.Fatalf("disabled email should not be retried, got %v", err)
	}

	missing, _ := queue.NewOrderConfirmationEmailTask(queue.OrderConfirmationEmailPayload{OrderID: 9999})
	if err := consumer.handleOrderConfirmationEmail(context.Background(), missing); err != nil {
		t.Fatalf("missing order should not be retried, got %v", err)
	}

	bad := asynq.NewTask(queue.TaskOrderConfirmationEmail, []byte(`{}`))
	if err := consumer.handleOrderConfirmationEmail(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("invalid payload should skip retry, got %v", err)
	}
}
