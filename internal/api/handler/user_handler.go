package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=customer homecook"`
	Location string `json:"location" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 注册
// @Summary 用户注册
// @Tags 用户
// @Accept json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "all fields are required")
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role, req.Location)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Created(c, "user registered successfully", nil)
	}
}

// Login 登录
// @Summary 登录换取 JWT
// @Tags 用户
// @Accept json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email and password are required")
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.SuccessMsg(c, "login successful", gin.H{"token": token, "user": user})
	}
}

// ListUsers 用户列表
// @Summary 全部用户
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, users)
}

// ListHomecooks 家厨列表（顾客发起聊天用）
// @Summary 家厨列表
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/users/homecooks [get]
func (h *Handler) ListHomecooks(c *gin.Context) {
	cooks, err := h.users.ListHomecooks(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, cooks)
}
