package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pianao-store/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
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

func createTestProduct(t *testing.T, db *gorm.DB, title string, price int64, category string) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    title,
		Price:    models.NewMoneyFromInt(price),
		Category: category,
		IsActive: true,
		Specs:    models.ProductSpecs{Format: "PDF", Size: "A4", Pages: 12},
		Benefits: models.StringArray{"ゲーム感覚で音が聴き分けられるようになる"},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
