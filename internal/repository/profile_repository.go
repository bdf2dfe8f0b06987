package repository

import (
	"errors"

	"github.com/pianao-store/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	GetByUserID(userID uint) (*models.UserProfile, error)
	Upsert(profile *models.UserProfile) error
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetByUserID 获取用户资料，不存在返回 nil
func (r *GormProfileRepository) GetByUserID(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert 按 user_id 写入整行资料
func (r *GormProfileRepository) Upsert(profile *models.UserProfile) error {
	if profile == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"nickname",
			"full_name",
			"postal_code",
			"prefecture",
			"city",
			"address_line1",
			"address_line2",
			"phone_number",
			"updated_at",
		}),
	}).Create(profile).Error
}
