package handler

import (
	"github.com/d60-Lab/homecook/internal/notify"
	"github.com/d60-Lab/homecook/internal/service"
)

// Handler 聚合所有 HTTP 处理器依赖
type Handler struct {
	users     service.UserService
	dishes    service.DishService
	addresses service.AddressService
	orders    service.OrderService
	payments  service.PaymentService
	wishlist  service.WishlistService
	messages  service.MessageService
	hub       *notify.Hub
	uploadDir string
}

// New 创建 Handler
func New(
	users service.UserService,
	dishes service.DishService,
	addresses service.AddressService,
	orders service.OrderService,
	payments service.PaymentService,
	wishlist service.WishlistService,
	messages service.MessageService,
	hub *notify.Hub,
	uploadDir string,
) *Handler {
	return &Handler{
		users:     users,
		dishes:    dishes,
		addresses: addresses,
		orders:    orders,
		payments:  payments,
		wishlist:  wishlist,
		messages:  messages,
		hub:       hub,
		uploadDir: uploadDir,
	}
}
