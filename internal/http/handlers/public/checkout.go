package public

import (
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// AcceptTermsRequest 同意条款请求
type AcceptTermsRequest struct {
	Accepted bool `json:"accepted"`
}

// GetCheckout 获取结算向导状态与购物车合计
func (h *Handler) GetCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CheckoutService.Get(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, view)
}

// AcceptCheckoutTerms 第一步：同意条款
func (h *Handler) AcceptCheckoutTerms(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AcceptTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := h.CheckoutService.AcceptTerms(c.Request.Context(), uid, req.Accepted)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, state)
}

// SubmitCheckoutAddress 第二步：提交收货信息
func (h *Handler) SubmitCheckoutAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.ShippingAddress
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	state, err := h.CheckoutService.SubmitAddress(c.Request.Context(), uid, req)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, state)
}

// CheckoutBack 返回上一步
func (h *Handler) CheckoutBack(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	state, err := h.CheckoutService.Back(c.Request.Context(), uid)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, state)
}

// ConfirmCheckout 第三步：确认下单
func (h *Handler) ConfirmCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.CheckoutService.PlaceOrder(c.Request.Context(), uid, getUserEmail(c), i18n.ResolveLocale(c))
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}
