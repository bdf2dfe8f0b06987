package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminOrderListItem 管理端订单列表项
type AdminOrderListItem struct {
	models.Order
	UserEmail string `json:"user_email,omitempty"`
}

// UpdateOrderStatusRequest 订单状态变更请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var userID uint
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_no")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	emails := map[uint]string{}
	items := make([]AdminOrderListItem, 0, len(orders))
	for _, order := range orders {
		email, seen := emails[order.UserID]
		if !seen {
			if user, err := h.UserRepo.GetByID(order.UserID); err == nil && user != nil {
				email = user.Email
			}
			emails[order.UserID] = email
		}
		items = append(items, AdminOrderListItem{Order: order, UserEmail: email})
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetAdmin(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 变更订单状态（确认收款/取消/完成）
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", orderID,
		"status", order.Status,
		"operator", currentUsername(c),
	)
	response.Success(c, order)
}

// AdminResendOrderEmail 重新发送订单确认邮件
func (h *Handler) AdminResendOrderEmail(c *gin.Context) {
	orderID, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.OrderService.SendConfirmationEmail(c.Request.Context(), orderID, i18n.ResolveLocale(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"sent": true})
}
