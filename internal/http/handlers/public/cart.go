package public

import (
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// ReconcileCartRequest 合并本地购物车请求
type ReconcileCartRequest struct {
	GuestCartID string                  `json:"guest_cart_id"`
	Items       []service.LocalCartItem `json:"items"`
}

func (h *Handler) respondUserCart(c *gin.Context, uid uint) {
	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.Summarize(items))
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	h.respondUserCart(c, uid)
}

// AddCartItem 加入购物车（已存在时数量 +1）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CartService.AddItem(uid, req.ProductID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.respondUserCart(c, uid)
}

// UpdateCartItem 修改数量，quantity <= 0 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CartService.UpdateQuantity(uid, productID, *req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.respondUserCart(c, uid)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, productID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	h.respondUserCart(c, uid)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, service.Summarize(nil))
}

// ReconcileCart 合并本地购物车：远端为空时写入，否则丢弃本地
func (h *Handler) ReconcileCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ReconcileCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.GuestCartID == "" {
		req.GuestCartID = handlershared.GuestCartID(c)
	}
	result, err := h.CartService.Reconcile(c.Request.Context(), service.ReconcileInput{
		UserID:      uid,
		GuestCartID: req.GuestCartID,
		Items:       req.Items,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, result)
}
