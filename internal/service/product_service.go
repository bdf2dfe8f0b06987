package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pianao-store/internal/cache"
	"github.com/pianao-store/internal/config"
	"github.com/pianao-store/internal/constants"
	"github.com/pianao-store/internal/logger"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/repository"

	"github.com/shopspring/decimal"
)

const productListCacheKey = "catalog:products"

// ProductService 商品业务服务
type ProductService struct {
	repo  repository.ProductRepository
	store cache.Store
	cfg   *config.Config
}

// NewProductService 创建商品服务
func NewProductService(cfg *config.Config, repo repository.ProductRepository, store cache.Store) *ProductService {
	return &ProductService{repo: repo, store: store, cfg: cfg}
}

// CreateProductInput 创建商品输入
type CreateProductInput struct {
	Title          string
	CatchCopy      string
	Price          decimal.Decimal
	Category       string
	Description    string
	HowTo          string
	Image          string
	Images         []string
	Specs          models.ProductSpecs
	TargetAudience []string
	Benefits       []string
	IsNew          bool
	IsPopular      bool
	IsActive       *bool
}

// UpdateProductInput 部分更新商品输入，nil 字段保持原值
type UpdateProductInput struct {
	Title          *string
	CatchCopy      *string
	Price          *decimal.Decimal
	Category       *string
	Description    *string
	HowTo          *string
	Image          *string
	Images         *[]string
	Specs          *models.ProductSpecs
	TargetAudience *[]string
	Benefits       *[]string
	IsNew          *bool
	IsPopular      *bool
	IsActive       *bool
}

// productListCache 商品列表缓存条目
type productListCache struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

// ListPublic 获取公开商品列表（新品在前，可按分类过滤）
func (s *ProductService) ListPublic(ctx context.Context, category, search string, page, pageSize int) ([]models.Product, int64, error) {
	category = strings.TrimSpace(category)
	if category != "" && !isProductCategoryValid(category) {
		return nil, 0, ErrProductCategoryInvalid
	}
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   category,
		Search:     strings.TrimSpace(search),
		OnlyActive: true,
	}

	ttl := s.cacheTTL()
	key := productListKey(filter)
	if ttl > 0 && s.store != nil {
		var cached productListCache
		hit, err := s.store.GetJSON(ctx, key, &cached)
		if err != nil {
			logger.Warnw("product_list_cache_get_failed", "key", key, "error", err)
		} else if hit {
			return cached.Items, cached.Total, nil
		}
	}

	items, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	if ttl > 0 && s.store != nil {
		if err := s.store.SetJSON(ctx, key, productListCache{Items: items, Total: total}, ttl); err != nil {
			logger.Warnw("product_list_cache_set_failed", "key", key, "error", err)
		} else {
			s.rememberCacheKey(ctx, key)
		}
	}
	return items, total, nil
}

// GetPublic 获取上架商品详情
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(category, search string, page, pageSize int) ([]models.Product, int64, error) {
	return s.repo.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	product := &models.Product{IsActive: true}
	applyProductInput(product, input)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	// is_active 带数据库默认值，创建时零值会被忽略
	if !product.IsActive {
		if err := s.repo.Update(product); err != nil {
			return nil, err
		}
	}
	s.invalidateListCache(ctx)
	return product, nil
}

// Update 部分更新商品，只修改请求中出现的字段
func (s *ProductService) Update(ctx context.Context, id uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := applyProductPatch(product, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	return product, nil
}

// Delete 删除商品（软删除）
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	return nil
}

func validateProductInput(input *CreateProductInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))
	if input.Title == "" {
		return ErrProductTitleRequired
	}
	if input.Price.IsNegative() {
		return ErrProductPriceInvalid
	}
	if !isProductCategoryValid(input.Category) {
		return ErrProductCategoryInvalid
	}
	return nil
}

func applyProductInput(product *models.Product, input CreateProductInput) {
	product.Title = input.Title
	product.CatchCopy = strings.TrimSpace(input.CatchCopy)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.Category = input.Category
	product.Description = input.Description
	product.HowTo = input.HowTo
	product.Image = strings.TrimSpace(input.Image)
	product.Images = normalizeStringList(input.Images)
	product.Specs = input.Specs
	product.TargetAudience = normalizeStringList(input.TargetAudience)
	product.Benefits = normalizeStringList(input.Benefits)
	product.IsNew = input.IsNew
	product.IsPopular = input.IsPopular
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
}

func applyProductPatch(product *models.Product, input UpdateProductInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return ErrProductTitleRequired
		}
		product.Title = title
	}
	if input.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*input.Category))
		if !isProductCategoryValid(category) {
			return ErrProductCategoryInvalid
		}
		product.Category = category
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return ErrProductPriceInvalid
		}
		product.Price = models.NewMoneyFromDecimal(*input.Price)
	}
	if input.CatchCopy != nil {
		product.CatchCopy = strings.TrimSpace(*input.CatchCopy)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.HowTo != nil {
		product.HowTo = *input.HowTo
	}
	if input.Image != nil {
		product.Image = strings.TrimSpace(*input.Image)
	}
	if input.Images != nil {
		product.Images = normalizeStringList(*input.Images)
	}
	if input.Specs != nil {
		product.Specs = *input.Specs
	}
	if input.TargetAudience != nil {
		product.TargetAudience = normalizeStringList(*input.TargetAudience)
	}
	if input.Benefits != nil {
		product.Benefits = normalizeStringList(*input.Benefits)
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	if input.IsPopular != nil {
		product.IsPopular = *input.IsPopular
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	return nil
}

func isProductCategoryValid(category string) bool {
	for _, item := range constants.ProductCategories {
		if item == category {
			return true
		}
	}
	return false
}

func normalizeStringList(values []string) models.StringArray {
	result := make(models.StringArray, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result = append(result, value)
	}
	return result
}

func productListKey(filter repository.ProductListFilter) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d", productListCacheKey, filter.Category, filter.Search, filter.Page, filter.PageSize)
}

func (s *ProductService) cacheTTL() time.Duration {
	if s.cfg == nil {
		return 0
	}
	return s.cfg.Catalog.CacheTTL()
}

// 记录已写入的列表 key（集合），写操作时统一清理
func (s *ProductService) rememberCacheKey(ctx context.Context, key string) {
	if err := s.store.SAdd(ctx, productListCacheKey, key); err != nil {
		logger.Warnw("product_list_cache_index_failed", "error", err)
	}
}

func (s *ProductService) invalidateListCache(ctx context.Context) {
	if s.store == nil {
		return
	}
	keys, err := s.store.SMembers(ctx, productListCacheKey)
	if err != nil {
		logger.Warnw("product_list_cache_index_get_failed", "error", err)
		return
	}
	// 只移除已清理的成员，清理期间新写入的 key 保留在索引中
	removed := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := s.store.Del(ctx, key); err != nil {
			logger.Warnw("product_list_cache_del_failed", "key", key, "error", err)
			continue
		}
		removed = append(removed, key)
	}
	if err := s.store.SRem(ctx, productListCacheKey, removed...); err != nil {
		logger.Warnw("product_list_cache_index_cleanup_failed", "error", err)
	}
}
