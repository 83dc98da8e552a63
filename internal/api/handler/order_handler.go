package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type placeOrderRequest struct {
	DishID   int64 `json:"dish_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status" binding:"required,oneof=accepted preparing delivered cancelled"`
}

// PlaceOrder 顾客下单
// @Summary 下单
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body placeOrderRequest true "下单信息"
// @Success 201 {object} response.Response{data=model.Order}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders [post]
func (h *Handler) PlaceOrder(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid dish ID or quantity")
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), ident.ID, req.DishID, req.Quantity)
	switch {
	case errors.Is(err, service.ErrDishNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNoAddress):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, "order placed successfully", order)
	}
}

// CustomerOrders 顾客订单分页列表
// @Summary 顾客订单列表
// @Tags 订单
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(5)
// @Success 200 {object} response.Response
// @Router /api/orders/customer [get]
func (h *Handler) CustomerOrders(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	rows, pagination, err := h.orders.CustomerOrders(c.Request.Context(), ident.ID, page, limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"orders": rows, "pagination": pagination})
}

// IncomingOrders 家厨来单列表
// @Summary 家厨来单列表（含地址快照）
// @Tags 订单
// @Success 200 {object} response.Response
// @Router /api/orders/incoming [get]
func (h *Handler) IncomingOrders(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	rows, err := h.orders.IncomingOrders(c.Request.Context(), ident.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, rows)
}

// UpdateOrderStatus 家厨更新订单状态
// @Summary 更新订单状态
// @Tags 订单
// @Accept json
// @Param orderId path int true "订单ID"
// @Param request body updateStatusRequest true "目标状态"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders/{orderId}/status [put]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid status value")
		return
	}

	err = h.orders.UpdateStatus(c.Request.Context(), ident.ID, orderID, req.Status)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found or unauthorized")
	case errors.Is(err, service.ErrSameStatus),
		errors.Is(err, service.ErrPaymentRequired),
		errors.Is(err, service.ErrInvalidTransition):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.SuccessMsg(c, "order status updated to "+string(req.Status), gin.H{"status": req.Status})
	}
}
