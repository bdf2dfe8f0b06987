package public

import (
	"time"

	"github.com/pianao-store/internal/constants"
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/i18n"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// PublicConfig 前台公共配置
type PublicConfig struct {
	Locale        string   `json:"locale"`
	Categories    []string `json:"categories"`
	CheckoutSteps []string `json:"checkout_steps"`
	BankTransfer  []string `json:"bank_transfer"`
}

// GetConfig 获取前台公共配置（分类、结算步骤、汇款信息）
func (h *Handler) GetConfig(c *gin.Context) {
	ctx := c.Request.Context()
	var cached PublicConfig
	if hit, err := h.Store.GetJSON(ctx, publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	data := PublicConfig{
		Locale:        i18n.DefaultLocale,
		Categories:    constants.ProductCategories,
		CheckoutSteps: []string{constants.CheckoutStepTerms, constants.CheckoutStepAddress, constants.CheckoutStepConfirm},
		BankTransfer:  h.Config.Email.BankTransfer,
	}
	if data.BankTransfer == nil {
		data.BankTransfer = []string{}
	}
	if err := h.Store.SetJSON(ctx, publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		handlershared.RequestLog(c).Warnw("public_config_cache_set_failed", "error", err)
	}
	response.Success(c, data)
}

// GetProducts 商品列表（category / search 过滤）
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.ListPublic(c.Request.Context(), c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrProductCategoryInvalid, Code: response.CodeBadRequest, Key: "error.product_category_invalid"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetPublic(id)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetNotifications 通知列表（type 过滤）
func (h *Handler) GetNotifications(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	items, total, err := h.NotificationService.List(c.Query("type"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrNotificationTypeInvalid, Code: response.CodeBadRequest, Key: "error.notification_type_invalid"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}
