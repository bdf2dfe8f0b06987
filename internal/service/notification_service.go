package service

import (
	"strings"

	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"
)

// NotificationInput 通知创建/更新输入
type NotificationInput struct {
	Title   string
	Content string
	Type    string
}

// NotificationService 全站通知服务
type NotificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List 通知列表（新到旧），notifType 为空时不过滤
func (s *NotificationService) List(notifType string, page, pageSize int) ([]models.Notification, int64, error) {
	notifType = strings.ToLower(strings.TrimSpace(notifType))
	if notifType != "" && !isNotificationTypeValid(notifType) {
		return nil, 0, ErrNotificationTypeInvalid
	}
	return s.repo.List(repository.NotificationListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     notifType,
	})
}

// Get 通知详情
func (s *NotificationService) Get(id uint) (*models.Notification, error) {
	notification, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// Create 发布通知
func (s *NotificationService) Create(input NotificationInput) (*models.Notification, error) {
	if err := normalizeNotificationInput(&input); err != nil {
		return nil, err
	}
	notification := &models.Notification{
		Title:   input.Title,
		Content: input.Content,
		Type:    input.Type,
	}
	if err := s.repo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Update 更新通知
func (s *NotificationService) Update(id uint, input NotificationInput) (*models.Notification, error) {
	if err := normalizeNotificationInput(&input); err != nil {
		return nil, err
	}
	notification, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	notification.Title = input.Title
	notification.Content = input.Content
	notification.Type = input.Type
	if err := s.repo.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

// Delete 删除通知
func (s *NotificationService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func normalizeNotificationInput(input *NotificationInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.Title == "" {
		return ErrNotificationTitleRequired
	}
	if input.Type == "" {
		input.Type = constants.NotificationTypeInfo
	}
	if !isNotificationTypeValid(input.Type) {
		return ErrNotificationTypeInvalid
	}
	return nil
}

func isNotificationTypeValid(notifType string) bool {
	switch notifType {
	case constants.NotificationTypeInfo, constants.NotificationTypeAlert, constants.NotificationTypeNewArrival:
		return true
	}
	return false
}
