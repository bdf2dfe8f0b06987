package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/repository"

	"github.com/shopspring/decimal"
)

func TestProductServiceValidationAndCache(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Catalog.CacheTTLSeconds = 60
	products := NewProductService(cfg, repository.NewProductRepository(svc.db), cache.NewMemoryStore())

	if _, err := products.Create(ctx, CreateProductInput{Title: "", Category: constants.ProductCategoryIntro}); !errors.Is(err, ErrProductTitleRequired) {
		t.Fatalf("expected ErrProductTitleRequired, got %v", err)
	}
	if _, err := products.Create(ctx, CreateProductInput{Title: "x", Category: "jazz"}); !errors.Is(err, ErrProductCategoryInvalid) {
		t.Fatalf("expected ErrProductCategoryInvalid, got %v", err)
	}
	if _, err := products.Create(ctx, CreateProductInput{Title: "x", Category: constants.ProductCategoryIntro, Price: decimal.NewFromInt(-1)}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("expected ErrProductPriceInvalid, got %v", err)
	}

	first, err := products.Create(ctx, CreateProductInput{
		Title:    "ドレミカード",
		Category: constants.ProductCategoryReading,
		Price:    decimal.NewFromInt(980),
		Benefits: []string{" 読譜が速くなる ", ""},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(first.Benefits) != 1 || first.Benefits[0] != "読譜が速くなる" {
		t.Fatalf("benefits should be trimmed: %+v", first.Benefits)
	}

	items, total, err := products.ListPublic(ctx, "", "", 1, 20)
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("unexpected list: %v %d", err, total)
	}

	if _, err := products.Create(ctx, CreateProductInput{Title: "リズム", Category: constants.ProductCategoryRhythm, Price: decimal.NewFromInt(1200)}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}
	items, total, err = products.ListPublic(ctx, "", "", 1, 20)
	if err != nil || total != 2 {
		t.Fatalf("cache should be invalidated after create: %v %d", err, total)
	}
	if items[0].Title != "リズム" {
		t.Fatalf("newest product should come first, got %s", items[0].Title)
	}

	filtered, _, err := products.ListPublic(ctx, constants.ProductCategoryReading, "", 1, 20)
	if err != nil || len(filtered) != 1 || filtered[0].ID != first.ID {
		t.Fatalf("category filter failed: %v %+v", err, filtered)
	}
	if _, _, err := products.ListPublic(ctx, "jazz", "", 1, 20); !errors.Is(err, ErrProductCategoryInvalid) {
		t.Fatalf("expected ErrProductCategoryInvalid, got %v", err)
	}

	inactive := false
	if _, err := products.Update(ctx, first.ID, UpdateProductInput{IsActive: &inactive}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := products.GetPublic(first.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product should be hidden, got %v", err)
	}
	if err := products.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := products.GetAdminByID(first.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product should be gone, got %v", err)
	}
}

func TestProductServiceUpdateKeepsOmittedFields(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	products := NewProductService(&config.Config{}, repository.NewProductRepository(svc.db), cache.NewMemoryStore())

	created, err := products.Create(ctx, CreateProductInput{
		Title:          "はじめてのドレミ",
		Category:       constants.ProductCategoryIntro,
		Price:          decimal.NewFromInt(1500),
		Images:         []string{"/images/doremi.png"},
		TargetAudience: []string{"4〜6歳"},
		Benefits:       []string{"音名が定着する"},
		IsNew:          true,
		IsPopular:      true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	title := " はじめてのドレミ 改訂版 "
	updated, err := products.Update(ctx, created.ID, UpdateProductInput{Title: &title})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, err := products.GetAdminByID(created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	for _, p := range []struct {
		name  string
		title string
		price string
	}{
		{"returned", updated.Title, updated.Price.String()},
		{"stored", stored.Title, stored.Price.String()},
	} {
		if p.title != "はじめてのドレミ 改訂版" {
			t.Fatalf("%s title want trimmed new title got %q", p.name, p.title)
		}
		if p.price != "1500.00" {
			t.Fatalf("%s price should be kept, got %s", p.name, p.price)
		}
	}
	if stored.Category != constants.ProductCategoryIntro {
		t.Fatalf("category should be kept, got %s", stored.Category)
	}
	if len(stored.Images) != 1 || len(stored.TargetAudience) != 1 || len(stored.Benefits) != 1 {
		t.Fatalf("lists should be kept: %+v %+v %+v", stored.Images, stored.TargetAudience, stored.Benefits)
	}
	if !stored.IsNew || !stored.IsPopular || !stored.IsActive {
		t.Fatalf("flags should be kept: new=%v popular=%v active=%v", stored.IsNew, stored.IsPopular, stored.IsActive)
	}

	price := decimal.NewFromInt(1800)
	notNew := false
	empty := []string{}
	if _, err := products.Update(ctx, created.ID, UpdateProductInput{Price: &price, IsNew: &notNew, Benefits: &empty}); err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	stored, _ = products.GetAdminByID(created.ID)
	if stored.Price.String() != "1800.00" || stored.IsNew || len(stored.Benefits) != 0 {
		t.Fatalf("sent fields should change: price=%s new=%v benefits=%v", stored.Price.String(), stored.IsNew, stored.Benefits)
	}
	if !stored.IsPopular || len(stored.Images) != 1 {
		t.Fatalf("omitted fields should be kept: popular=%v images=%v", stored.IsPopular, stored.Images)
	}

	blank := "  "
	if _, err := products.Update(ctx, created.ID, UpdateProductInput{Title: &blank}); !errors.Is(err, ErrProductTitleRequired) {
		t.Fatalf("expected ErrProductTitleRequired, got %v", err)
	}
	jazz := "jazz"
	if _, err := products.Update(ctx, created.ID, UpdateProductInput{Category: &jazz}); !errors.Is(err, ErrProductCategoryInvalid) {
		t.Fatalf("expected ErrProductCategoryInvalid, got %v", err)
	}
	negative := decimal.NewFromInt(-1)
	if _, err := products.Update(ctx, created.ID, UpdateProductInput{Price: &negative}); !errors.Is(err, ErrProductPriceInvalid) {
		t.Fatalf("expected ErrProductPriceInvalid, got %v", err)
	}
	if _, err := products.Update(ctx, 9999, UpdateProductInput{Title: &title}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductListCacheIndexCleared(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	cfg := &config.Config{}
	cfg.Catalog.CacheTTLSeconds = 60
	store := cache.NewMemoryStore()
	products := NewProductService(cfg, repository.NewProductRepository(svc.db), store)

	created, err := products.Create(ctx, CreateProductInput{Title: "リズムカード", Category: constants.ProductCategoryRhythm, Price: decimal.NewFromInt(980)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := products.ListPublic(ctx, "", "", 1, 20); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if _, _, err := products.ListPublic(ctx, constants.ProductCategoryRhythm, "", 1, 20); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	keys, _ := store.SMembers(ctx, productListCacheKey)
	if len(keys) != 2 {
		t.Fatalf("want 2 cached list keys got %v", keys)
	}

	if err := products.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if keys, _ := store.SMembers(ctx, productListCacheKey); len(keys) != 0 {
		t.Fatalf("index should be empty after invalidation: %v", keys)
	}
	items, total, err := products.ListPublic(ctx, "", "", 1, 20)
	if err != nil || total != 0 || len(items) != 0 {
		t.Fatalf("list should reflect delete: %v %d", err, total)
	}
}
