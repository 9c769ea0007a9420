package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/ecommerce/internal/checkout/application"
	"github.com/wyfcoding/ecommerce/internal/checkout/domain"
	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/pkg/response"
)

// CheckoutHandler HTTP 处理器
// 负责处理结账流程相关的 HTTP 请求
type CheckoutHandler struct {
	service *application.CheckoutService
}

// NewCheckoutHandler 创建 HTTP 处理器实例
func NewCheckoutHandler(service *application.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes 注册路由
func (h *CheckoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api/v1/checkout/sessions")
	{
		api.POST("", h.StartCheckout)                            // 发起结账
		api.GET("/:id", h.GetSession)                            // 会话详情
		api.PUT("/:id/shipping", h.UpdateShipping)               // 写入配送信息
		api.PUT("/:id/shipping-method", h.SelectShippingMethod)  // 选择配送方式
		api.PUT("/:id/payment-method", h.SelectPaymentMethod)    // 选择支付方式
		api.PUT("/:id/payment", h.UpdatePayment)                 // 写入支付信息
		api.POST("/:id/next", h.Next)                            // 前进一步
		api.POST("/:id/previous", h.Previous)                    // 后退一步
		api.POST("/:id/submit", h.Submit)                        // 提交订单
	}
}

// SessionResponse 会话响应
// 支付信息只回传掩码卡号与持卡人，其余字段不出网
type SessionResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Step           int                 `json:"step"`
	Status         string              `json:"status"`
	Shipping       domain.ShippingInfo `json:"shipping"`
	ShippingMethod string              `json:"shipping_method"`
	PaymentMethod  string              `json:"payment_method"`
	MaskedCard     string              `json:"masked_card,omitempty"`
	Cardholder     string              `json:"cardholder,omitempty"`
	OrderNumber    string              `json:"order_number,omitempty"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		Step:           int(s.Step),
		Status:         string(s.Status),
		Shipping:       s.Shipping,
		ShippingMethod: s.ShippingMethod,
		PaymentMethod:  s.PaymentMethod,
		OrderNumber:    s.OrderNumber,
	}
	if s.Payment.CardNumber != "" {
		resp.MaskedCard = s.Payment.MaskedCardNumber()
		resp.Cardholder = s.Payment.CardholderName
	}
	return resp
}

// StartCheckoutRequest 发起结账请求
type StartCheckoutRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// StartCheckout 发起结账会话
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	var req StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	session, err := h.service.StartCheckout(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		logging.Error(c.Request.Context(), "Failed to start checkout", "user_id", req.UserID, "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}
	response.Success(c, toSessionResponse(session))
}

// GetSession 会话详情
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	session, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusNotFound, "session not found", "")
		return
	}
	response.Success(c, toSessionResponse(session))
}

// UpdateShipping 写入配送信息
func (h *CheckoutHandler) UpdateShipping(c *gin.Context) {
	var info domain.ShippingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	session, err := h.service.UpdateShipping(c.Request.Context(), c.Param("id"), info)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// SelectMethodRequest 方式选择请求
type SelectMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// SelectShippingMethod 选择配送方式
func (h *CheckoutHandler) SelectShippingMethod(c *gin.Context) {
	var req SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	session, err := h.service.SelectShippingMethod(c.Request.Context(), c.Param("id"), req.Method)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// SelectPaymentMethod 选择支付方式
func (h *CheckoutHandler) SelectPaymentMethod(c *gin.Context) {
	var req SelectMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	session, err := h.service.SelectPaymentMethod(c.Request.Context(), c.Param("id"), req.Method)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// UpdatePayment 写入支付信息
func (h *CheckoutHandler) UpdatePayment(c *gin.Context) {
	var info domain.PaymentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
		return
	}

	session, err := h.service.UpdatePayment(c.Request.Context(), c.Param("id"), info)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// Next 前进一步，当前步骤校验失败时返回字段级错误
func (h *CheckoutHandler) Next(c *gin.Context) {
	session, err := h.service.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// Previous 后退一步
func (h *CheckoutHandler) Previous(c *gin.Context) {
	session, err := h.service.Previous(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// Submit 提交订单
func (h *CheckoutHandler) Submit(c *gin.Context) {
	session, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, toSessionResponse(session))
}

// writeError 把领域错误映射为 HTTP 状态码
func (h *CheckoutHandler) writeError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"code":    http.StatusUnprocessableEntity,
			"message": validation.Error(),
			"data":    gin.H{"step": int(validation.Step), "fields": validation.Fields},
		})
		return
	}

	var submission *domain.SubmissionError
	if errors.As(err, &submission) {
		response.ErrorWithStatus(c, http.StatusPaymentRequired, submission.Error(), "")
		return
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		response.ErrorWithStatus(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidShippingMethod),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		response.ErrorWithStatus(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, domain.ErrSubmissionInFlight),
		errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrNotReviewStep),
		errors.Is(err, domain.ErrNotAdvanceable):
		response.ErrorWithStatus(c, http.StatusConflict, err.Error(), "")
	default:
		logging.Error(c.Request.Context(), "Checkout request failed", "error", err)
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
	}
}
