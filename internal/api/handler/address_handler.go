package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type addressRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Building    string `json:"building" binding:"required"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	Pincode     string `json:"pincode" binding:"required,pincode"`
	Country     string `json:"country" binding:"required"`
}

// SaveAddress 新建或更新地址
// @Summary 保存收货地址
// @Tags 地址
// @Accept json
// @Param request body addressRequest true "地址"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/customer/address [post]
func (h *Handler) SaveAddress(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "all address fields are required (pincode must be a 6-digit code)")
		return
	}

	addr := &model.Address{
		CustomerID:  ident.ID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Building:    req.Building,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		Pincode:     req.Pincode,
		Country:     req.Country,
	}
	if err := h.addresses.Save(c.Request.Context(), addr); err != nil {
		response.InternalError(c, err)
		return
	}
	response.SuccessMsg(c, "address saved successfully", addr)
}

// GetAddress 查询本人地址
// @Summary 查询收货地址
// @Tags 地址
// @Success 200 {object} response.Response{data=model.Address}
// @Failure 404 {object} response.Response
// @Router /api/customer/address [get]
func (h *Handler) GetAddress(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	addr, err := h.addresses.Get(c.Request.Context(), ident.ID)
	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		response.NotFound(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Success(c, addr)
	}
}
