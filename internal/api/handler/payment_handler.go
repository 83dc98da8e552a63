package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type checkoutRequest struct {
	OrderID int64 `json:"orderId" binding:"required"`
}

// CreateCheckoutSession 创建 Stripe Checkout 会话
// @Summary 创建支付会话
// @Tags 支付
// @Accept json
// @Produce json
// @Param request body checkoutRequest true "订单ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/payments/create-checkout-session [post]
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing orderId")
		return
	}

	url, err := h.payments.CreateCheckoutSession(c.Request.Context(), ident.ID, req.OrderID)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotYourOrder):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid):
		response.Conflict(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Success(c, gin.H{"url": url})
	}
}

// StripeWebhook 支付回调。这条路由必须拿到未经解析的原始请求体，
// 签名是对精确字节计算的。业务层面的异常一律回 200，只有传输 /
// 签名 / 载荷结构问题才回 400（非 2xx 会触发 Stripe 重试）。
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}

	err = h.payments.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Receipt 下载支付收据
// @Summary 下载 PDF 收据
// @Tags 支付
// @Produce application/pdf
// @Param orderId path int true "订单ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Response
// @Router /api/payments/receipt/{orderId} [get]
func (h *Handler) Receipt(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	pdf, err := h.payments.Receipt(c.Request.Context(), ident.ID, orderID)
	switch {
	case errors.Is(err, service.ErrReceiptUnavailable):
		response.NotFound(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt_order_%d.pdf", orderID))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
