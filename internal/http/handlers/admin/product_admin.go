package admin

import (
	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductRequest 创建商品请求
type ProductRequest struct {
	Title          string              `json:"title" binding:"required"`
	CatchCopy      string              `json:"catch_copy"`
	Price          decimal.Decimal     `json:"price"`
	Category       string              `json:"category" binding:"required"`
	Description    string              `json:"description"`
	HowTo          string              `json:"how_to"`
	Image          string              `json:"image"`
	Images         []string            `json:"images"`
	Specs          models.ProductSpecs `json:"specs"`
	TargetAudience []string            `json:"target_audience"`
	Benefits       []string            `json:"benefits"`
	IsNew          bool                `json:"is_new"`
	IsPopular      bool                `json:"is_popular"`
	IsActive       *bool               `json:"is_active"`
}

func (r ProductRequest) toInput() service.CreateProductInput {
	return service.CreateProductInput{
		Title:          r.Title,
		CatchCopy:      r.CatchCopy,
		Price:          r.Price,
		Category:       r.Category,
		Description:    r.Description,
		HowTo:          r.HowTo,
		Image:          r.Image,
		Images:         r.Images,
		Specs:          r.Specs,
		TargetAudience: r.TargetAudience,
		Benefits:       r.Benefits,
		IsNew:          r.IsNew,
		IsPopular:      r.IsPopular,
		IsActive:       r.IsActive,
	}
}

// UpdateProductRequest 部分更新商品请求，未出现的字段保持原值
type UpdateProductRequest struct {
	Title          *string              `json:"title"`
	CatchCopy      *string              `json:"catch_copy"`
	Price          *decimal.Decimal     `json:"price"`
	Category       *string              `json:"category"`
	Description    *string              `json:"description"`
	HowTo          *string              `json:"how_to"`
	Image          *string              `json:"image"`
	Images         *[]string            `json:"images"`
	Specs          *models.ProductSpecs `json:"specs"`
	TargetAudience *[]string            `json:"target_audience"`
	Benefits       *[]string            `json:"benefits"`
	IsNew          *bool                `json:"is_new"`
	IsPopular      *bool                `json:"is_popular"`
	IsActive       *bool                `json:"is_active"`
}

func (r UpdateProductRequest) toInput() service.UpdateProductInput {
	return service.UpdateProductInput{
		Title:          r.Title,
		CatchCopy:      r.CatchCopy,
		Price:          r.Price,
		Category:       r.Category,
		Description:    r.Description,
		HowTo:          r.HowTo,
		Image:          r.Image,
		Images:         r.Images,
		Specs:          r.Specs,
		TargetAudience: r.TargetAudience,
		Benefits:       r.Benefits,
		IsNew:          r.IsNew,
		IsPopular:      r.IsPopular,
		IsActive:       r.IsActive,
	}
}

// GetAdminProducts 获取商品列表 (Admin)，包含已下架商品
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.ListAdmin(c.Query("category"), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_created", "product_id", product.ID, "operator", currentUsername(c))
	response.Success(c, product)
}

// UpdateProduct 部分更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_updated", "product_id", product.ID, "operator", currentUsername(c))
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id, "operator", currentUsername(c))
	response.Success(c, gin.H{"deleted": true})
}
