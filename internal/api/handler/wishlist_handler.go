package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type wishlistRequest struct {
	DishID int64 `json:"dish_id" binding:"required"`
}

// AddToWishlist 收藏菜品
// @Summary 加入心愿单
// @Tags 心愿单
// @Accept json
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/wishlist [post]
func (h *Handler) AddToWishlist(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing dish_id")
		return
	}

	err := h.wishlist.Add(c.Request.Context(), ident.ID, req.DishID)
	switch {
	case errors.Is(err, service.ErrAlreadyWishlisted):
		response.Conflict(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, "added to wishlist successfully", nil)
	}
}

// RemoveFromWishlist 取消收藏
// @Summary 移出心愿单
// @Tags 心愿单
// @Accept json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/wishlist [delete]
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing dish_id")
		return
	}

	err := h.wishlist.Remove(c.Request.Context(), ident.ID, req.DishID)
	switch {
	case errors.Is(err, service.ErrNotInWishlist):
		response.NotFound(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.SuccessMsg(c, "removed from wishlist", nil)
	}
}

// Wishlist 心愿单列表
// @Summary 心愿单列表
// @Tags 心愿单
// @Param customerId path int true "顾客ID"
// @Success 200 {object} response.Response
// @Router /api/wishlist/{customerId} [get]
func (h *Handler) Wishlist(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid customer id")
		return
	}
	rows, err := h.wishlist.List(c.Request.Context(), customerID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, rows)
}
