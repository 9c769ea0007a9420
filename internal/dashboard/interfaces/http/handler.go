package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/internal/dashboard/application"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// DashboardHandler HTTP 处理器
// 负责处理卖家后台相关的 HTTP 请求
type DashboardHandler struct {
	service *application.DashboardService
}

// NewDashboardHandler 创建 HTTP 处理器实例
func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/dashboard")
	{
		api.GET("/overview", h.GetOverview)    // 经营总览
		api.GET("/orders", h.ListOrders)       // 全量订单
		api.GET("/inventory", h.ListInventory) // 库存视图
	}
}

// GetOverview 经营总览
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.service.GetOverview(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to build dashboard overview", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, gin.H{
		"total_revenue":   overview.TotalRevenue.StringFixed(2),
		"total_orders":    overview.TotalOrders,
		"total_products":  overview.TotalProducts,
		"total_customers": overview.TotalCustomers,
	})
}

// ListOrders 全量订单
func (h *DashboardHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list dashboard orders", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		out = append(out, gin.H{
			"order_number": o.OrderNumber,
			"user_id":      o.UserID,
			"status":       string(o.Status),
			"total":        o.Total.StringFixed(2),
			"item_count":   o.ItemCount(),
			"created_at":   o.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	response.Success(c, gin.H{"orders": out, "total": len(out)})
}

// ListInventory 库存视图
func (h *DashboardHandler) ListInventory(c *gin.Context) {
	items, err := h.service.ListInventory(c.Request.Context())
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to list inventory", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"product_id": item.ProductID,
			"name":       item.Name,
			"category":   item.Category,
			"price":      item.Price.StringFixed(2),
			"stock":      item.Stock,
			"sold":       item.Sold,
		})
	}
	response.Success(c, gin.H{"inventory": out, "total": len(out)})
}
