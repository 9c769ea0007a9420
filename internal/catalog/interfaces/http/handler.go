package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/ecommerce/internal/catalog/application"
	"github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CatalogHandler HTTP 处理器
// 负责处理商品目录相关的 HTTP 请求
type CatalogHandler struct {
	query *application.CatalogQueryService
}

// NewCatalogHandler 创建 HTTP 处理器实例
func NewCatalogHandler(query *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{query: query}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/products")
	{
		api.GET("", h.ListProducts)            // 商品列表（支持筛选与排序）
		api.GET("/:id", h.GetProduct)          // 商品详情
		api.GET("/:id/reviews", h.ListReviews) // 商品评价
	}
}

// ProductResponse 商品响应，金额仅在此处做两位小数展示
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	FinalPrice  string  `json:"final_price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Discount    int     `json:"discount"`
	Stock       int     `json:"stock"`
	Sold        int     `json:"sold"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		FinalPrice:  p.DiscountedPrice().StringFixed(2),
		Image:       p.Image,
		Description: p.Description,
		Category:    string(p.Category),
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Discount:    p.Discount,
		Stock:       p.Stock,
		Sold:        p.Sold,
	}
}

// ListProducts 商品列表，支持 search/category/min_price/max_price/sort 参数
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	criteria := domain.FilterCriteria{
		Query:    c.Query("search"),
		Category: domain.Category(c.Query("category")),
		Sort:     domain.SortKey(c.DefaultQuery("sort", string(domain.SortByName))),
	}

	if raw := c.Query("min_price"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid min_price", "")
			return
		}
		criteria.MinPrice = min
	}
	if raw := c.Query("max_price"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			response.ErrorWithStatus(c, http.StatusBadRequest, "invalid max_price", "")
			return
		}
		criteria.MaxPrice = max
	}

	products, err := h.query.SearchProducts(c.Request.Context(), criteria)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list products", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	response.Success(c, gin.H{"products": out, "total": len(out)})
}

// GetProduct 商品详情
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := h.query.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	response.Success(c, toProductResponse(*product))
}

// ListReviews 商品评价列表
func (h *CatalogHandler) ListReviews(c *gin.Context) {
	id := c.Param("id")
	reviews, err := h.query.ListReviews(c.Request.Context(), id)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
		return
	}
	response.Success(c, gin.H{"reviews": reviews, "total": len(reviews)})
}
