package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/models"
)

func TestCheckoutStateRequiresTermsAcceptance(t *testing.T) {
	state := NewCheckoutState()
	if err := state.AcceptTerms(false); !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}
	if state.Step != constants.CheckoutStepTerms {
		t.Fatalf("step should stay at terms, got %s", state.Step)
	}
	if err := state.SubmitAddress(validTestAddress()); !errors.Is(err, ErrCheckoutStep) {
		t.Fatalf("address before terms should fail, got %v", err)
	}
	if err := state.AcceptTerms(true); err != nil {
		t.Fatalf("accept terms failed: %v", err)
	}
	if state.Step != constants.CheckoutStepAddress {
		t.Fatalf("expected address step, got %s", state.Step)
	}
}

func TestCheckoutStateAddressValidation(t *testing.T) {
	state := NewCheckoutState()
	_ = state.AcceptTerms(true)

	missing := []func(*ShippingAddress){
		func(a *ShippingAddress) { a.FullName = " " },
		func(a *ShippingAddress) { a.PostalCode = "" },
		func(a *ShippingAddress) { a.Prefecture = "" },
		func(a *ShippingAddress) { a.AddressLine1 = "" },
		func(a *ShippingAddress) { a.PhoneNumber = "" },
	}
	for i, mutate := range missing {
		addr := validTestAddress()
		mutate(&addr)
		if err := state.SubmitAddress(addr); !errors.Is(err, ErrAddressIncomplete) {
			t.Fatalf("case %d: expected ErrAddressIncomplete, got %v", i, err)
		}
		if state.Step != constants.CheckoutStepAddress {
			t.Fatalf("case %d: step changed to %s", i, state.Step)
		}
	}

	addr := validTestAddress()
	addr.City = ""
	if err := state.SubmitAddress(addr); err != nil {
		t.Fatalf("city is optional, got %v", err)
	}
	if state.Step != constants.CheckoutStepConfirm {
		t.Fatalf("expected confirm step, got %s", state.Step)
	}

	state.Back()
	if state.Step != constants.CheckoutStepAddress {
		t.Fatalf("back from confirm should go to address, got %s", state.Step)
	}
	state.Back()
	state.Back()
	if state.Step != constants.CheckoutStepTerms {
		t.Fatalf("back at terms should stay at terms, got %s", state.Step)
	}
}

func TestCheckoutPlaceOrderFlow(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	user := createServiceTestUser(t, svc.db, "buyer@example.com")
	p1 := createServiceTestProduct(t, svc.db, "p1", 1200)
	p2 := createServiceTestProduct(t, svc.db, "p2", 1500)
	if err := svc.carts.UpdateQuantity(user.ID, p1.ID, 2); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}
	if err := svc.carts.AddItem(user.ID, p2.ID); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if _, err := svc.checkout.PlaceOrder(ctx, user.ID, user.Email, "ja-JP"); !errors.Is(err, ErrCheckoutStep) {
		t.Fatalf("placing order at terms should fail, got %v", err)
	}
	state, err := svc.checkout.AcceptTerms(ctx, user.ID, false)
	if !errors.Is(err, ErrTermsNotAccepted) || state.Step != constants.CheckoutStepTerms {
		t.Fatalf("expected terms rejection, got %v %+v", err, state)
	}
	if _, err := svc.checkout.AcceptTerms(ctx, user.ID, true); err != nil {
		t.Fatalf("accept terms failed: %v", err)
	}
	if _, err := svc.checkout.SubmitAddress(ctx, user.ID, validTestAddress()); err != nil {
		t.Fatalf("submit address failed: %v", err)
	}

	profile, err := svc.profiles.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.FullName != "山田 花子" {
		t.Fatalf("address should be saved to profile, got %+v", profile)
	}

	order, err := svc.checkout.PlaceOrder(ctx, user.ID, user.Email, "ja-JP")
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.TotalAmount.String() != "3900.00" {
		t.Fatalf("want total 3900 got %s", order.TotalAmount.String())
	}

	view, err := svc.checkout.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("get checkout failed: %v", err)
	}
	if view.State.Step != constants.CheckoutStepTerms || len(view.Cart.Items) != 0 {
		t.Fatalf("checkout should reset and cart be cleared, got %+v", view)
	}
	if view.State.Address.FullName != "山田 花子" {
		t.Fatalf("address should be prefilled from profile, got %+v", view.State.Address)
	}

	if _, err := svc.checkout.AcceptTerms(ctx, user.ID, true); err != nil {
		t.Fatalf("accept terms failed: %v", err)
	}
	if _, err := svc.checkout.SubmitAddress(ctx, user.ID, validTestAddress()); err != nil {
		t.Fatalf("submit address failed: %v", err)
	}
	if _, err := svc.checkout.PlaceOrder(ctx, user.ID, user.Email, "ja-JP"); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}

	var count int64
	svc.db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one order, got %d", count)
	}
}
