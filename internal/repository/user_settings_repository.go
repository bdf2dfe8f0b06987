package repository

import (
	"errors"

	"github.com/pianao-store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserSettingsRepository 用户设置数据访问接口
type UserSettingsRepository interface {
	GetByUserID(userID uint) (*models.UserSettings, error)
	CreateIfAbsent(settings *models.UserSettings) error
	Update(userID uint, updates map[string]interface{}) error
}

// GormUserSettingsRepository GORM 实现
type GormUserSettingsRepository struct {
	db *gorm.DB
}

// NewUserSettingsRepository 创建用户设置仓库
func NewUserSettingsRepository(db *gorm.DB) *GormUserSettingsRepository {
	return &GormUserSettingsRepository{db: db}
}

// GetByUserID 获取用户设置，不存在返回 nil
func (r *GormUserSettingsRepository) GetByUserID(userID uint) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// CreateIfAbsent 插入默认设置，已存在时忽略
func (r *GormUserSettingsRepository) CreateIfAbsent(settings *models.UserSettings) error {
	if settings == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(settings).Error
}

// Update 按字段更新
func (r *GormUserSettingsRepository) Update(userID uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.UserSettings{}).Where("user_id = ?", userID).Updates(updates).Error
}
