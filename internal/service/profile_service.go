package service

import (
	"strings"

	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"
)

// ShippingAddress 收货信息
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	PostalCode   string `json:"postal_code"`
	Prefecture   string `json:"prefecture"`
	City         string `json:"city"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	PhoneNumber  string `json:"phone_number"`
}

// Normalize 去除首尾空白
func (a ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		FullName:     strings.TrimSpace(a.FullName),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		Prefecture:   strings.TrimSpace(a.Prefecture),
		City:         strings.TrimSpace(a.City),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		PhoneNumber:  strings.TrimSpace(a.PhoneNumber),
	}
}

// Validate 必填：姓名、邮编、都道府县、地址1、电话
func (a ShippingAddress) Validate() error {
	n := a.Normalize()
	if n.FullName == "" || n.PostalCode == "" || n.Prefecture == "" || n.AddressLine1 == "" || n.PhoneNumber == "" {
		return ErrAddressIncomplete
	}
	return nil
}

// ProfileService 用户资料服务
type ProfileService struct {
	repo repository.ProfileRepository
}

// NewProfileService 创建用户资料服务
func NewProfileService(repo repository.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetOrCreate 获取资料，不存在时创建空资料
func (s *ProfileService) GetOrCreate(userID uint) (*models.UserProfile, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	profile, err := s.repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	profile = &models.UserProfile{UserID: userID}
	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateNickname 设置昵称
func (s *ProfileService) UpdateNickname(userID uint, nickname string) (*models.UserProfile, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, ErrNicknameRequired
	}
	profile, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	profile.Nickname = nickname
	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveAddress 保存收货信息
func (s *ProfileService) SaveAddress(userID uint, address ShippingAddress) (*models.UserProfile, error) {
	if err := address.Validate(); err != nil {
		return nil, err
	}
	profile, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	applyAddressToProfile(profile, address.Normalize())
	if err := s.repo.Upsert(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddressOf 从资料中取出收货信息
func AddressOf(profile *models.UserProfile) ShippingAddress {
	if profile == nil {
		return ShippingAddress{}
	}
	return ShippingAddress{
		FullName:     profile.FullName,
		PostalCode:   profile.PostalCode,
		Prefecture:   profile.Prefecture,
		City:         profile.City,
		AddressLine1: profile.AddressLine1,
		AddressLine2: profile.AddressLine2,
		PhoneNumber:  profile.PhoneNumber,
	}
}

func applyAddressToProfile(profile *models.UserProfile, address ShippingAddress) {
	profile.FullName = address.FullName
	profile.PostalCode = address.PostalCode
	profile.Prefecture = address.Prefecture
	profile.City = address.City
	profile.AddressLine1 = address.AddressLine1
	profile.AddressLine2 = address.AddressLine2
	profile.PhoneNumber = address.PhoneNumber
}
