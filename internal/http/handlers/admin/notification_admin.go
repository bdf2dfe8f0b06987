package admin

import (
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationRequest 通知请求
type NotificationRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

func (r NotificationRequest) toInput() service.NotificationInput {
	return service.NotificationInput{Title: r.Title, Content: r.Content, Type: r.Type}
}

// GetAdminNotifications 通知列表
func (h *Handler) GetAdminNotifications(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	items, total, err := h.NotificationService.List(c.Query("type"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// GetAdminNotification 通知详情
func (h *Handler) GetAdminNotification(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	item, err := h.NotificationService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// CreateNotification 发布通知
func (h *Handler) CreateNotification(c *gin.Context) {
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.NotificationService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateNotification 更新通知
func (h *Handler) UpdateNotification(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	item, err := h.NotificationService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteNotification 删除通知
func (h *Handler) DeleteNotification(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.NotificationService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
