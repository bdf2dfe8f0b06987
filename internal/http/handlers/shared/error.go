package shared

import (
	"errors"

	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, key)
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondErrorWithMsg 返回自定义消息错误响应，并在有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// MappedError 业务错误到接口错误的映射
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// ServiceErrorRules 服务层哨兵错误的统一映射
var ServiceErrorRules = []MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrInvalidToken, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.invalid_email"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductNotAvailable, Code: response.CodeBadRequest, Key: "error.product_invalid"},
	{Target: service.ErrProductTitleRequired, Code: response.CodeBadRequest, Key: "error.product_title_required"},
	{Target: service.ErrProductPriceInvalid, Code: response.CodeBadRequest, Key: "error.product_price_invalid"},
	{Target: service.ErrProductCategoryInvalid, Code: response.CodeBadRequest, Key: "error.product_category_invalid"},
	{Target: service.ErrInvalidCartItem, Code: response.CodeBadRequest, Key: "error.cart_item_invalid"},
	{Target: service.ErrCartEmpty, Code: response.CodeBadRequest, Key: "error.cart_empty"},
	{Target: service.ErrGuestCartID, Code: response.CodeBadRequest, Key: "error.guest_cart_invalid"},
	{Target: service.ErrTermsNotAccepted, Code: response.CodeBadRequest, Key: "error.checkout_terms_not_accepted"},
	{Target: service.ErrAddressIncomplete, Code: response.CodeBadRequest, Key: "error.checkout_address_incomplete"},
	{Target: service.ErrCheckoutStep, Code: response.CodeBadRequest, Key: "error.checkout_step_invalid"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderCreateFailed, Code: response.CodeInternal, Key: "error.order_create_failed"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
	{Target: service.ErrNicknameRequired, Code: response.CodeBadRequest, Key: "error.profile_nickname_required"},
	{Target: service.ErrNotificationNotFound, Code: response.CodeNotFound, Key: "error.notification_not_found"},
	{Target: service.ErrNotificationTitleRequired, Code: response.CodeBadRequest, Key: "error.notification_title_required"},
	{Target: service.ErrNotificationTypeInvalid, Code: response.CodeBadRequest, Key: "error.notification_type_invalid"},
	{Target: service.ErrEmailRequestInvalid, Code: response.CodeBadRequest, Key: "error.email_request_invalid"},
	{Target: service.ErrEmailServiceDisabled, Code: response.CodeInternal, Key: "error.email_not_configured"},
	{Target: service.ErrEmailServiceNotConfigured, Code: response.CodeInternal, Key: "error.email_not_configured"},
	{Target: service.ErrEmailSendFailed, Code: response.CodeBadGateway, Key: "error.email_send_failed"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.bad_request"},
}

// RespondMappedError 按规则顺序匹配业务错误，未命中时使用兜底错误码。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	var policyErr interface {
		Key() string
		Args() []interface{}
	}
	if errors.Is(err, service.ErrWeakPassword) && errors.As(err, &policyErr) {
		locale := i18n.ResolveLocale(c)
		RespondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...), nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// RespondServiceError 使用服务层统一映射返回错误。
func RespondServiceError(c *gin.Context, err error) {
	RespondMappedError(c, err, ServiceErrorRules, response.CodeInternal, "error.internal")
}
