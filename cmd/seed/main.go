package main

import (
	"errors"
	"os"
	"strings"

	"github.com/pianao-store/internal/authz"
	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	created, err := seedProducts(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed products: %v", err)
	}
	logger.Infow("seed_products_done", "created", created)

	created, err = seedNotifications(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to seed notifications: %v", err)
	}
	logger.Infow("seed_notifications_done", "created", created)

	// 预置角色与运营账号
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}
	if err := models.InitDefaultAdmin(models.DB, os.Getenv("PIANAO_DEFAULT_ADMIN_USERNAME"), os.Getenv("PIANAO_DEFAULT_ADMIN_PASSWORD")); err != nil {
		stdLog.Fatalf("Failed to init default admin: %v", err)
	}
	if password := strings.TrimSpace(os.Getenv("PIANAO_STAFF_PASSWORD")); password != "" {
		staff, err := ensureStaffAdmin(models.DB, "staff", password)
		if err != nil {
			stdLog.Fatalf("Failed to seed staff admin: %v", err)
		}
		if err := authzService.SetAdminRoles(staff.ID, []string{authz.RoleCatalogEditor, authz.RoleOrderManager}); err != nil {
			stdLog.Fatalf("Failed to assign staff roles: %v", err)
		}
		logger.Infow("seed_staff_admin_done", "admin_id", staff.ID)
	}

	logger.Infow("seed_done")
}

// seedProducts 按标题去重写入示例教材
func seedProducts(db *gorm.DB) (int, error) {
	products := []models.Product{
		{
			Title:          "はじめてのドレミ ワークシート",
			CatchCopy:      "鍵盤と音名をたのしく覚える導入教材",
			Price:          models.NewMoneyFromInt(1200),
			Category:       constants.ProductCategoryIntro,
			Description:    "ピアノをはじめたばかりの生徒向けに、ドレミの位置と名前を色分けで覚えるワークシート集です。",
			HowTo:          "レッスンの最初の5分で1枚ずつ取り組みます。",
			Image:          "/images/products/doremi.png",
			Images:         models.StringArray{"/images/products/doremi.png"},
			Specs:          models.ProductSpecs{Format: "PDF", Size: "A4", Pages: 24},
			TargetAudience: models.StringArray{"4〜6歳", "初めてピアノに触れる生徒"},
			Benefits:       models.StringArray{"音名が定着する", "鍵盤の位置関係がわかる"},
			IsNew:          true,
			IsActive:       true,
		},
		{
			Title:          "すらすら譜読みドリル",
			CatchCopy:      "ト音記号・ヘ音記号の読譜を毎日少しずつ",
			Price:          models.NewMoneyFromInt(1500),
			Category:       constants.ProductCategoryReading,
			Description:    "五線の音符を短時間で読めるようにするドリルです。段階的に音域が広がります。",
			HowTo:          "宿題として1日1ページを目安に使います。",
			Image:          "/images/products/reading.png",
			Images:         models.StringArray{"/images/products/reading.png"},
			Specs:          models.ProductSpecs{Format: "PDF", Size: "A4", Pages: 40},
			TargetAudience: models.StringArray{"小学生", "譜読みが苦手な生徒"},
			Benefits:       models.StringArray{"読譜スピードが上がる", "新しい曲への抵抗が減る"},
			IsPopular:      true,
			IsActive:       true,
		},
		{
			Title:          "リズムカード 40枚セット",
			CatchCopy:      "手拍子で身につくリズム感",
			Price:          models.NewMoneyFromInt(980),
			Category:       constants.ProductCategoryRhythm,
			Description:    "四分音符から付点リズムまで、レッスンで使えるカード40枚です。",
			HowTo:          "印刷してカットし、先生と生徒で交互に打ちます。",
			Image:          "/images/products/rhythm.png",
			Images:         models.StringArray{"/images/products/rhythm.png"},
			Specs:          models.ProductSpecs{Format: "PDF", Size: "A4", Pages: 10},
			TargetAudience: models.StringArray{"幼児〜小学生"},
			Benefits:       models.StringArray{"拍感が安定する", "グループレッスンでも使える"},
			IsActive:       true,
		},
		{
			Title:          "クリスマス連弾アレンジ集",
			CatchCopy:      "発表会にぴったりの季節の連弾",
			Price:          models.NewMoneyFromInt(2200),
			Category:       constants.ProductCategorySeasonal,
			Description:    "定番のクリスマス曲を先生と生徒の連弾用にアレンジしました。",
			HowTo:          "生徒パートは初級、先生パートで伴奏を支えます。",
			Image:          "/images/products/christmas.png",
			Images:         models.StringArray{"/images/products/christmas.png"},
			Specs:          models.ProductSpecs{Format: "PDF", Size: "A4", Pages: 18},
			TargetAudience: models.StringArray{"初級〜中級"},
			Benefits:       models.StringArray{"発表会の演目になる", "アンサンブルの楽しさを知る"},
			IsNew:          true,
			IsActive:       true,
		},
	}

	created := 0
	for i := range products {
		var count int64
		if err := db.Model(&models.Product{}).Where("title = ?", products[i].Title).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&products[i]).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func seedNotifications(db *gorm.DB) (int, error) {
	notifications := []models.Notification{
		{
			Title:   "新教材を追加しました",
			Content: "クリスマス連弾アレンジ集を公開しました。",
			Type:    constants.NotificationTypeNewArrival,
		},
		{
			Title:   "お支払いについて",
			Content: "ご注文後7日以内に銀行振込をお願いいたします。",
			Type:    constants.NotificationTypeInfo,
		},
	}

	created := 0
	for i := range notifications {
		var count int64
		if err := db.Model(&models.Notification{}).Where("title = ?", notifications[i].Title).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&notifications[i]).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func ensureStaffAdmin(db *gorm.DB, username, password string) (*models.Admin, error) {
	var admin models.Admin
	err := db.Where("username = ?", username).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.Admin{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
