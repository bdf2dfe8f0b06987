package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pianao-store/internal/models"
)

func TestReconcileMergesIntoEmptyRemoteCart(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := createServiceTestUser(t, svc.db, "merge@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	p2 := createServiceTestProduct(t, svc.db, "p2", 1500)

	guestID := NewGuestCartID()
	if _, err := svc.carts.AddGuestItem(ctx, guestID, p1.ID); err != nil {
		t.Fatalf("add guest item failed: %v", err)
	}
	if _, err := svc.carts.UpdateGuestQuantity(ctx, guestID, p1.ID, 2); err != nil {
		t.Fatalf("update guest quantity failed: %v", err)
	}
	if _, err := svc.carts.AddGuestItem(ctx, guestID, p2.ID); err != nil {
		t.Fatalf("add guest item failed: %v", err)
	}

	result, err := svc.carts.Reconcile(ctx, ReconcileInput{UserID: user.ID, GuestCartID: guestID})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !result.Merged || result.Discarded != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	quantities := map[uint]int{}
	for _, item := range result.Items {
		quantities[item.ProductID] = item.Quantity
	}
	if len(quantities) != 2 || quantities[p1.ID] != 2 || quantities[p2.ID] != 1 {
		t.Fatalf("remote cart should equal local cart, got %+v", quantities)
	}

	local, err := svc.carts.ListGuest(ctx, guestID)
	if err != nil {
		t.Fatalf("list guest failed: %v", err)
	}
	if len(local) != 0 {
		t.Fatalf("local cart should be empty after reconcile, got %d", len(local))
	}
}

func TestReconcileKeepsNonEmptyRemoteCart(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := createServiceTestUser(t, svc.db, "remote@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	p2 := createServiceTestProduct(t, svc.db, "p2", 1500)

	if err := svc.carts.AddItem(user.ID, p1.ID); err != nil {
		t.Fatalf("add remote item failed: %v", err)
	}

	result, err := svc.carts.Reconcile(ctx, ReconcileInput{
		UserID: user.ID,
		Items:  []LocalCartItem{{ProductID: p2.ID, Quantity: 3}, {ProductID: p1.ID, Quantity: 5}},
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.Merged || result.Discarded != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Items) != 1 || result.Items[0].ProductID != p1.ID || result.Items[0].Quantity != 1 {
		t.Fatalf("remote cart should be unchanged, got %+v", result.Items)
	}
}

func TestReconcileSkipsUnavailableProducts(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := createServiceTestUser(t, svc.db, "skip@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)

	result, err := svc.carts.Reconcile(ctx, ReconcileInput{
		UserID: user.ID,
		Items: []LocalCartItem{
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: p1.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
			{ProductID: p1.ID, Quantity: 0},
		},
	})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if !result.Merged || result.Discarded != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Items) != 1 || result.Items[0].Quantity != 2 {
		t.Fatalf("duplicate local entries should be summed, got %+v", result.Items)
	}
}

func TestReconcileNotMergedWhenAllLocalItemsUnavailable(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := createServiceTestUser(t, svc.db, "gone@example.com")
	retired := createServiceTestProduct(t, svc.db, "retired", 800)
	if err := svc.db.Model(retired).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	guestID := NewGuestCartID()
	if err := svc.carts.guestCarts.save(ctx, guestID, []LocalCartItem{
		{ProductID: retired.ID, Quantity: 2},
		{ProductID: 9999, Quantity: 1},
	}); err != nil {
		t.Fatalf("save guest cart failed: %v", err)
	}

	result, err := svc.carts.Reconcile(ctx, ReconcileInput{UserID: user.ID, GuestCartID: guestID})
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if result.Merged || result.Discarded != 2 || len(result.Items) != 0 {
		t.Fatalf("nothing was written, want merged=false: %+v", result)
	}
	left, err := svc.carts.guestCarts.List(ctx, guestID)
	if err != nil || len(left) != 0 {
		t.Fatalf("guest cart should still be cleared, got %v err=%v", left, err)
	}
}

func TestUpdateQuantityNonPositiveRemovesItem(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "qty@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	p2 := createServiceTestProduct(t, svc.db, "p2", 1500)

	for _, id := range []uint{p1.ID, p2.ID} {
		if err := svc.carts.AddItem(user.ID, id); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}
	if err := svc.carts.UpdateQuantity(user.ID, p1.ID, 0); err != nil {
		t.Fatalf("update to zero failed: %v", err)
	}
	if err := svc.carts.UpdateQuantity(user.ID, p2.ID, -3); err != nil {
		t.Fatalf("update to negative failed: %v", err)
	}
	items, err := svc.carts.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestGuestQuantityNonPositiveRemovesItem(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	guestID := NewGuestCartID()

	if _, err := svc.carts.AddGuestItem(ctx, guestID, p1.ID); err != nil {
		t.Fatalf("add guest item failed: %v", err)
	}
	items, err := svc.carts.UpdateGuestQuantity(ctx, guestID, p1.ID, 0)
	if err != nil {
		t.Fatalf("update guest quantity failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty guest cart, got %+v", items)
	}
}

func TestAddItemIncrementsQuantity(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "inc@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)

	for i := 0; i < 3; i++ {
		if err := svc.carts.AddItem(user.ID, p1.ID); err != nil {
			t.Fatalf("add item failed: %v", err)
		}
	}
	items, err := svc.carts.ListByUser(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %+v", items)
	}
	summary := Summarize(items)
	if summary.TotalItems != 3 || summary.TotalPrice.String() != "3600.00" {
		t.Fatalf("unexpected summary: %d %s", summary.TotalItems, summary.TotalPrice.String())
	}
}

func TestAddItemRejectsInactiveProduct(t *testing.T) {
	svc := newTestServices(t)
	user := createServiceTestUser(t, svc.db, "inactive@example.com")
	product := createServiceTestProduct(t, svc.db, "hidden", 800)
	if err := svc.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if err := svc.carts.AddItem(user.ID, product.ID); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestGuestCartRejectsInvalidID(t *testing.T) {
	svc := newTestServices(t)
	if _, err := svc.carts.ListGuest(context.Background(), "not-a-uuid"); !errors.Is(err, ErrGuestCartID) {
		t.Fatalf("expected ErrGuestCartID, got %v", err)
	}
}
