package public

import (
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateNicknameRequest 修改昵称请求
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

// ProfileResponse 个人资料响应
type ProfileResponse struct {
	Nickname string                  `json:"nickname"`
	Address  service.ShippingAddress `json:"address"`
}

func buildProfileResponse(profile *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		Nickname: profile.Nickname,
		Address:  service.AddressOf(profile),
	}
}

// UpdateSettingsRequest 通知设置请求，缺省字段保持不变
type UpdateSettingsRequest struct {
	EmailNotification *bool `json:"email_notification"`
	AppNotification   *bool `json:"app_notification"`
}

// GetProfile 获取个人资料（首次访问时创建）
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	profile, err := h.ProfileService.GetOrCreate(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, buildProfileResponse(profile))
}

// UpdateProfileAddress 保存收货信息
func (h *Handler) UpdateProfileAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.ShippingAddress
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	profile, err := h.ProfileService.SaveAddress(uid, req)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, buildProfileResponse(profile))
}

// UpdateProfileNickname 修改昵称
func (h *Handler) UpdateProfileNickname(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	profile, err := h.ProfileService.UpdateNickname(uid, req.Nickname)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, buildProfileResponse(profile))
}

// GetSettings 获取通知设置（默认全部开启）
func (h *Handler) GetSettings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	settings, err := h.UserSettingsService.GetOrCreate(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, settings)
}

// UpdateSettings 部分更新通知设置
func (h *Handler) UpdateSettings(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	settings, err := h.UserSettingsService.Update(uid, service.UpdateUserSettingsInput{
		EmailNotification: req.EmailNotification,
		AppNotification:   req.AppNotification,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, settings)
}
