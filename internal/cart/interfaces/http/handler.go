package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/internal/cart/application"
	"github.com/wyfcoding/ecommerce/internal/cart/domain"
	catalog "github.com/wyfcoding/ecommerce/internal/catalog/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CartHandler HTTP 处理器
// 负责处理购物车相关的 HTTP 请求
type CartHandler struct {
	service *application.CartService
}

// NewCartHandler 创建 HTTP 处理器实例
func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/carts/:user_id")
	{
		api.GET("", h.GetCart)                          // 获取购物车
		api.GET("/quote", h.GetQuote)                   // 购物车报价
		api.POST("/items", h.AddItem)                   // 加购
		api.PUT("/items/:product_id", h.UpdateQuantity) // 更新数量
		api.DELETE("/items/:product_id", h.RemoveItem)  // 移除条目
		api.DELETE("", h.ClearCart)                     // 清空购物车
	}
}

// CartItemResponse 购物车条目响应
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
}

// CartResponse 购物车响应
type CartResponse struct {
	UserID        string             `json:"user_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	Subtotal      string             `json:"subtotal"`
}

func toCartResponse(cart *domain.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Image:     item.Image,
			Quantity:  item.Quantity,
		})
	}
	return CartResponse{
		UserID:        cart.UserID,
		Items:         items,
		TotalQuantity: cart.TotalQuantity(),
		Subtotal:      cart.Subtotal().StringFixed(2),
	}
}

// QuoteResponse 报价响应，金额仅在此处做两位小数展示
type QuoteResponse struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// GetCart 获取用户购物车
func (h *CartHandler) GetCart(c *gin.Context) {
	userID := c.Param("user_id")
	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to get cart", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toCartResponse(cart))
}

// GetQuote 购物车报价，shipping_method 缺省为 standard
func (h *CartHandler) GetQuote(c *gin.Context) {
	userID := c.Param("user_id")
	method := domain.ShippingMethod(c.DefaultQuery("shipping_method", string(domain.ShippingStandard)))

	quote, err := h.service.GetQuote(c.Request.Context(), userID, method)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidShippingMethod) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to quote cart", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, QuoteResponse{
		Subtotal: quote.Subtotal.StringFixed(2),
		Shipping: quote.Shipping.StringFixed(2),
		Tax:      quote.Tax.StringFixed(2),
		Total:    quote.Total.StringFixed(2),
	})
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddItem 加购
func (h *CartHandler) AddItem(c *gin.Context) {
	userID := c.Param("user_id")

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.service.AddItem(c.Request.Context(), userID, req.ProductID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "product not found", "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to add cart item",
			"user_id", userID, "product_id", req.ProductID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toCartResponse(cart))
}

// UpdateQuantityRequest 数量变更请求
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity 更新条目数量，quantity <= 0 等价于移除
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.service.UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity); err != nil {
		logging.Error(c.Request.Context(), "Failed to update cart quantity",
			"user_id", userID, "product_id", productID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toCartResponse(cart))
}

// RemoveItem 移除购物车条目
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID := c.Param("user_id")
	productID := c.Param("product_id")

	if err := h.service.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		logging.Error(c.Request.Context(), "Failed to remove cart item",
			"user_id", userID, "product_id", productID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toCartResponse(cart))
}

// ClearCart 清空购物车
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID := c.Param("user_id")

	if err := h.service.ClearCart(c.Request.Context(), userID); err != nil {
		logging.Error(c.Request.Context(), "Failed to clear cart", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{"user_id": userID, "cleared": true})
}
