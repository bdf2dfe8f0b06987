package public

import (
	"errors"

	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// SendOrderEmail 发送订单确认邮件，返回邮件服务商响应
func (h *Handler) SendOrderEmail(c *gin.Context) {
	var req service.OrderEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.email_request_invalid", err)
		return
	}

	locale := i18n.ResolveLocale(c)
	result, err := h.EmailService.SendOrderConfirmation(c.Request.Context(), req, locale)
	if err != nil {
		if errors.Is(err, service.ErrEmailSendFailed) {
			response.ErrorWithData(c, response.CodeBadGateway, i18n.T(locale, "error.email_send_failed"), result)
			return
		}
		respondWithMappedError(c, err, emailErrorRules, response.CodeInternal, "error.email_send_failed")
		return
	}
	if result == nil {
		result = map[string]interface{}{"sent": true}
	}
	response.Success(c, result)
}
