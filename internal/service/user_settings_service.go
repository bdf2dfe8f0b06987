package service

import (
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"
)

// UpdateUserSettingsInput 部分更新，nil 表示不修改
type UpdateUserSettingsInput struct {
	EmailNotification *bool
	AppNotification   *bool
}

// UserSettingsService 用户设置服务
type UserSettingsService struct {
	repo repository.UserSettingsRepository
}

// NewUserSettingsService 创建用户设置服务
func NewUserSettingsService(repo repository.UserSettingsRepository) *UserSettingsService {
	return &UserSettingsService{repo: repo}
}

// GetOrCreate 获取设置，不存在时按默认值（全部开启）创建
func (s *UserSettingsService) GetOrCreate(userID uint) (*models.UserSettings, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	settings, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}
	if err := s.repo.CreateIfAbsent(&models.UserSettings{
		UserID:            userID,
		EmailNotification: true,
		AppNotification:   true,
	}); err != nil {
		return nil, err
	}
	return s.repo.GetByUserID(userID)
}

// Update 更新设置
func (s *UserSettingsService) Update(userID uint, input UpdateUserSettingsInput) (*models.UserSettings, error) {
	if _, err := s.GetOrCreate(userID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.EmailNotification != nil {
		updates["email_notification"] = *input.EmailNotification
	}
	if input.AppNotification != nil {
		updates["app_notification"] = *input.AppNotification
	}
	if len(updates) > 0 {
		if err := s.repo.Update(userID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetByUserID(userID)
}
