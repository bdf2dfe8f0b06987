package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/models"
)

func TestBuildOrderLinesTotal(t *testing.T) {
	cartItems := []models.CartItem{
		{ProductID: 1, Quantity: 2, Product: &models.Product{ID: 1, Title: "p1", Price: models.NewMoneyFromInt(1200), IsActive: true}},
		{ProductID: 2, Quantity: 1, Product: &models.Product{ID: 2, Title: "p2", Price: models.NewMoneyFromInt(1500), IsActive: true}},
	}
	items, total, err := buildOrderLines(cartItems)
	if err != nil {
		t.Fatalf("build lines failed: %v", err)
	}
	if total.String() != "3900.00" {
		t.Fatalf("want 3900 got %s", total.String())
	}
	sum := models.NewMoneyFromInt(0)
	for _, item := range items {
		sum = sum.Add(item.PriceAtPurchase.Mul(item.Quantity))
	}
	if !sum.Equal(total.Decimal) {
		t.Fatalf("total %s differs from item sum %s", total.String(), sum.String())
	}
}

func TestBuildOrderLinesEmptyCart(t *testing.T) {
	inactive := []models.CartItem{
		{ProductID: 1, Quantity: 1, Product: &models.Product{ID: 1, IsActive: false}},
		{ProductID: 2, Quantity: 1},
	}
	if _, _, err := buildOrderLines(inactive); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestPlaceOrderSurvivesEmailFailure(t *testing.T) {
	svc := newTestServices(t)
	svc.email.err = errors.New("smtp down")
	user := createServiceTestUser(t, svc.db, "fail@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	p2 := createServiceTestProduct(t, svc.db, "p2", 1500)
	_ = svc.carts.UpdateQuantity(user.ID, p1.ID, 2)
	_ = svc.carts.AddItem(user.ID, p2.ID)

	order, err := svc.orders.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:  user.ID,
		Email:   user.Email,
		Address: validTestAddress(),
	})
	if err != nil {
		t.Fatalf("email failure should not fail the order: %v", err)
	}
	svc.orders.WaitEmails(context.Background())
	if len(svc.email.requests) != 1 {
		t.Fatalf("expected one email attempt, got %d", len(svc.email.requests))
	}
	req := svc.email.requests[0]
	if req.Email != user.Email || req.Total.String() != "3900.00" || len(req.Items) != 2 {
		t.Fatalf("unexpected email request: %+v", req)
	}

	stored, err := svc.orders.GetByUser(order.ID, user.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusPendingPayment || len(stored.Items) != 2 {
		t.Fatalf("unexpected stored order: %+v", stored)
	}
	sum := models.NewMoneyFromInt(0)
	for _, item := range stored.Items {
		sum = sum.Add(item.Subtotal())
	}
	if sum.String() != stored.TotalAmount.String() {
		t.Fatalf("stored total %s differs from item sum %s", stored.TotalAmount.String(), sum.String())
	}

	items, _ := svc.carts.ListByUser(user.ID)
	if len(items) != 0 {
		t.Fatalf("cart should be cleared, got %d items", len(items))
	}
}

func TestPlaceOrderKeepsPriceSnapshot(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "snap@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	_ = svc.carts.AddItem(user.ID, p1.ID)

	order, err := svc.orders.PlaceOrder(context.Background(), PlaceOrderInput{UserID: user.ID, Email: user.Email, Address: validTestAddress()})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if err := svc.db.Model(&models.Product{}).Where("id = ?", p1.ID).Update("price", models.NewMoneyFromInt(2000)).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	stored, err := svc.orders.GetByUser(order.ID, user.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.Items[0].PriceAtPurchase.String() != "1200.00" {
		t.Fatalf("price snapshot changed: %s", stored.Items[0].PriceAtPurchase.String())
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "status@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	_ = svc.carts.AddItem(user.ID, p1.ID)
	order, err := svc.orders.PlaceOrder(context.Background(), PlaceOrderInput{UserID: user.ID, Email: user.Email, Address: validTestAddress()})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := svc.orders.UpdateStatus(order.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending -> completed should be rejected, got %v", err)
	}
	paid, err := svc.orders.UpdateStatus(order.ID, constants.OrderStatusPaid)
	if err != nil {
		t.Fatalf("pending -> paid failed: %v", err)
	}
	if paid.Status != constants.OrderStatusPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected paid order: %+v", paid)
	}
	if _, err := svc.orders.UpdateStatus(order.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("paid -> canceled should be rejected, got %v", err)
	}
	done, err := svc.orders.UpdateStatus(order.ID, constants.OrderStatusCompleted)
	if err != nil || done.Status != constants.OrderStatusCompleted {
		t.Fatalf("paid -> completed failed: %v", err)
	}
}

func TestGetByUserHidesOtherUsersOrders(t *testing.T) {
	svc := newTestServices(t)
	owner := createServiceTestUser(t, svc.db, "owner@example.com")
	other := createServiceTestUser(t, svc.db, "other@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	_ = svc.carts.AddItem(owner.ID, p1.ID)
	order, err := svc.orders.PlaceOrder(context.Background(), PlaceOrderInput{UserID: owner.ID, Email: owner.Email, Address: validTestAddress()})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if _, err := svc.orders.GetByUser(order.ID, other.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestPlaceOrderDoesNotWaitForEmail(t *testing.T) {
	svc := newTestServices(t)
	svc.email.release = make(chan struct{})
	user := createServiceTestUser(t, svc.db, "async@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	_ = svc.carts.AddItem(user.ID, p1.ID)

	ctx, cancel := context.WithCancel(context.Background())
	order, err := svc.orders.PlaceOrder(ctx, PlaceOrderInput{
		UserID:  user.ID,
		Email:   user.Email,
		Address: validTestAddress(),
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TotalAmount.String() != "1200.00" {
		t.Fatalf("unexpected total %s", order.TotalAmount.String())
	}
	// 请求结束（ctx 取消）后邮件仍应发送
	cancel()

	svc.email.mu.Lock()
	pending := len(svc.email.requests)
	svc.email.mu.Unlock()
	if pending != 0 {
		t.Fatalf("email should still be blocked, got %d requests", pending)
	}

	close(svc.email.release)
	svc.orders.WaitEmails(context.Background())
	if len(svc.email.requests) != 1 || svc.email.requests[0].Email != user.Email {
		t.Fatalf("email should be sent after the request returned: %+v", svc.email.requests)
	}
	if !svc.email.hasDeadline {
		t.Fatalf("background send should carry its own timeout")
	}
}

func TestWaitEmailsStopsAtContextDone(t *testing.T) {
	svc := newTestServices(t)
	svc.email.release = make(chan struct{})
	defer close(svc.email.release)
	user := createServiceTestUser(t, svc.db, "stuck@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	_ = svc.carts.AddItem(user.ID, p1.ID)

	if _, err := svc.orders.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:  user.ID,
		Email:   user.Email,
		Address: validTestAddress(),
	}); err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	svc.orders.WaitEmails(ctx)
	if time.Since(start) > time.Second {
		t.Fatalf("wait should return once ctx is done")
	}
}
