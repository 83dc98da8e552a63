package handler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/homecook/internal/api/middleware"
	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/response"
)

type dishForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	Cuisine     string  `form:"cuisine"`
	IsVeg       bool    `form:"is_veg"`
}

// CreateDish 家厨上架菜品（multipart，可带图）
// @Summary 上架菜品
// @Tags 菜品
// @Accept multipart/form-data
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/dishes [post]
func (h *Handler) CreateDish(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	var form dishForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, "invalid dish data")
		return
	}

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			response.InternalError(c, fmt.Errorf("save upload: %w", err))
			return
		}
		imageURL = "/uploads/" + name
	}

	dish, err := h.dishes.Create(c.Request.Context(), ident.ID, service.DishInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Cuisine:     form.Cuisine,
		IsVeg:       form.IsVeg,
	}, imageURL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, "dish added successfully", dish)
}

// ListDishes 按角色返回菜品列表
// @Summary 菜品列表（家厨看自己的，顾客看同城的）
// @Tags 菜品
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/dishes [get]
func (h *Handler) ListDishes(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	switch ident.Role {
	case model.RoleHomecook:
		rows, err := h.dishes.ListForCook(c.Request.Context(), ident.ID)
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.Success(c, rows)
	case model.RoleCustomer:
		rows, err := h.dishes.ListForCustomer(c.Request.Context(), ident.ID)
		if errors.Is(err, service.ErrNoCityOnFile) {
			response.BadRequest(c, err.Error())
			return
		}
		if err != nil {
			response.InternalError(c, err)
			return
		}
		response.Success(c, rows)
	default:
		response.Forbidden(c, "invalid role for accessing dishes")
	}
}

// GetDish 菜品详情
// @Summary 菜品详情
// @Tags 菜品
// @Param id path int true "菜品ID"
// @Success 200 {object} response.Response{data=model.Dish}
// @Failure 404 {object} response.Response
// @Router /api/dishes/{id} [get]
func (h *Handler) GetDish(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid dish id")
		return
	}
	dish, err := h.dishes.GetByID(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrDishNotFound):
		response.NotFound(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.Success(c, dish)
	}
}

type dishUpdateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Cuisine     string  `json:"cuisine" binding:"required"`
	IsVeg       bool    `json:"is_veg"`
}

// UpdateDish 修改菜品
// @Summary 修改菜品
// @Tags 菜品
// @Accept json
// @Param id path int true "菜品ID"
// @Param request body dishUpdateRequest true "菜品信息"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/dishes/{id} [put]
func (h *Handler) UpdateDish(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid dish id")
		return
	}
	var req dishUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid dish data")
		return
	}

	dish, err := h.dishes.Update(c.Request.Context(), ident.ID, id, service.DishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Cuisine:     req.Cuisine,
		IsVeg:       req.IsVeg,
	})
	switch {
	case errors.Is(err, service.ErrDishNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotDishOwner):
		response.Forbidden(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.SuccessMsg(c, "dish updated successfully", dish)
	}
}

// DeleteDish 下架菜品
// @Summary 下架菜品
// @Tags 菜品
// @Param id path int true "菜品ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/dishes/{id} [delete]
func (h *Handler) DeleteDish(c *gin.Context) {
	ident, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid dish id")
		return
	}

	err = h.dishes.Delete(c.Request.Context(), ident.ID, id)
	switch {
	case errors.Is(err, service.ErrDishNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotDishOwner):
		response.Forbidden(c, err.Error())
	case err != nil:
		response.InternalError(c, err)
	default:
		response.SuccessMsg(c, "dish deleted successfully", nil)
	}
}
