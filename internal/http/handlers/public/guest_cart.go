package public

import (
	"github.com/pianao-store/internal/constants"
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求（每次 +1）
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求，quantity <= 0 表示移除
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GuestCartResponse 游客购物车响应
type GuestCartResponse struct {
	GuestCartID string `json:"guest_cart_id"`
	service.CartSummary
}

// resolveGuestCartID 读取游客购物车 ID，缺失时签发新 ID 并写入响应头
func resolveGuestCartID(c *gin.Context) string {
	cartID := handlershared.GuestCartID(c)
	if cartID == "" {
		cartID = service.NewGuestCartID()
	}
	c.Header(constants.HeaderGuestCartID, cartID)
	return cartID
}

func respondGuestCart(c *gin.Context, cartID string, items []service.CartItemDetail) {
	response.Success(c, GuestCartResponse{
		GuestCartID: cartID,
		CartSummary: service.Summarize(items),
	})
}

// GetGuestCart 获取游客购物车
func (h *Handler) GetGuestCart(c *gin.Context) {
	cartID := resolveGuestCartID(c)
	items, err := h.CartService.ListGuest(c.Request.Context(), cartID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondGuestCart(c, cartID, items)
}

// AddGuestCartItem 游客加入购物车
func (h *Handler) AddGuestCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cartID := resolveGuestCartID(c)
	items, err := h.CartService.AddGuestItem(c.Request.Context(), cartID, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondGuestCart(c, cartID, items)
}

// UpdateGuestCartItem 游客修改数量
func (h *Handler) UpdateGuestCartItem(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	cartID := resolveGuestCartID(c)
	items, err := h.CartService.UpdateGuestQuantity(c.Request.Context(), cartID, productID, *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondGuestCart(c, cartID, items)
}

// DeleteGuestCartItem 游客移除商品
func (h *Handler) DeleteGuestCartItem(c *gin.Context) {
	productID, ok := handlershared.ParseUintParam(c, "product_id")
	if !ok {
		return
	}
	cartID := resolveGuestCartID(c)
	items, err := h.CartService.RemoveGuestItem(c.Request.Context(), cartID, productID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondGuestCart(c, cartID, items)
}

// ClearGuestCart 清空游客购物车
func (h *Handler) ClearGuestCart(c *gin.Context) {
	cartID := resolveGuestCartID(c)
	if err := h.CartService.ClearGuest(c.Request.Context(), cartID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	respondGuestCart(c, cartID, nil)
}
