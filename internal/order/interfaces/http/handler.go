package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/internal/order/application"
	"github.com/wyfcoding/ecommerce/internal/order/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// OrderHandler HTTP 处理器
// 负责处理订单相关的 HTTP 请求
type OrderHandler struct {
	service *application.OrderService
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(service *application.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/orders")
	{
		api.GET("/:order_number", h.GetOrder)              // 订单详情
		api.PUT("/:order_number/status", h.UpdateStatus)   // 更新订单状态
		api.GET("/users/:user_id/list", h.ListUserOrders)  // 用户订单列表
	}
}

// OrderItemResponse 订单条目响应
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse 订单响应，金额做两位小数展示
type OrderResponse struct {
	OrderNumber    string              `json:"order_number"`
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	Subtotal       string              `json:"subtotal"`
	ShippingFee    string              `json:"shipping_fee"`
	Tax            string              `json:"tax"`
	Total          string              `json:"total"`
	ShippingMethod string              `json:"shipping_method"`
	Recipient      string              `json:"recipient"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      string              `json:"created_at"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return OrderResponse{
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal.StringFixed(2),
		ShippingFee:    o.ShippingFee.StringFixed(2),
		Tax:            o.Tax.StringFixed(2),
		Total:          o.Total.StringFixed(2),
		ShippingMethod: o.ShippingMethod,
		Recipient:      o.Recipient,
		Items:          items,
		CreatedAt:      o.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// GetOrder 订单详情
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("order_number"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to get order", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toOrderResponse(*order))
}

// ListUserOrders 用户订单列表
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	userID := c.Param("user_id")
	orders, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list orders", "user_id", userID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}
	response.Success(c, gin.H{"orders": out, "total": len(out)})
}

// UpdateStatusRequest 订单状态变更请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus 更新订单状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	orderNumber := c.Param("order_number")
	err := h.service.UpdateStatus(c.Request.Context(), orderNumber, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, domain.ErrOrderNotFound):
			response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
		default:
			logging.Error(c.Request.Context(), "Failed to update order status",
				"order_number", orderNumber, "error", err)
			response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		}
		return
	}
	response.Success(c, gin.H{"order_number": orderNumber, "status": req.Status})
}
