package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/notify"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/pkg/logger"
)

var (
	ErrDishNotFound  = errors.New("dish not found")
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoAddress 顾客没有存过地址，下单前置条件不满足
	ErrNoAddress = errors.New("no saved address found, please update your address")
)

// Pagination 分页元数据
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Limit      int   `json:"limit"`
}

// OrderService 订单编排：校验 → 取价 → 地址快照 → 落库 → best-effort 推送
type OrderService interface {
	// PlaceOrder 顾客下单
	PlaceOrder(ctx context.Context, customerID, dishID int64, quantity int) (*model.Order, error)

	// CustomerOrders 顾客订单分页列表
	CustomerOrders(ctx context.Context, customerID int64, page, limit int) ([]repository.CustomerOrderRow, *Pagination, error)

	// IncomingOrders 家厨来单列表
	IncomingOrders(ctx context.Context, cookID int64) ([]repository.CookOrderRow, error)

	// UpdateStatus 家厨更新订单状态（状态机校验见 CanTransition）
	UpdateStatus(ctx context.Context, cookID, orderID int64, status model.OrderStatus) error
}

type orderService struct {
	orders    repository.OrderRepository
	dishes    repository.DishRepository
	addresses repository.AddressRepository
	notifier  Notifier
}

// NewOrderService 创建订单服务
func NewOrderService(
	orders repository.OrderRepository,
	dishes repository.DishRepository,
	addresses repository.AddressRepository,
	notifier Notifier,
) OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &orderService{orders: orders, dishes: dishes, addresses: addresses, notifier: notifier}
}

func (s *orderService) PlaceOrder(ctx context.Context, customerID, dishID int64, quantity int) (*model.Order, error) {
	dish, err := s.dishes.GetByID(ctx, dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}

	addr, err := s.addresses.LatestByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, ErrNoAddress
	}

	order := &model.Order{
		CustomerID:      customerID,
		CookID:          dish.CookID,
		DishID:          dishID,
		Quantity:        quantity,
		TotalPrice:      dish.Price * float64(quantity),
		DeliveryAddress: addr.Snapshot(),
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentUnpaid,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	// 订单已落库，推送只是锦上添花
	s.notifier.Publish(channelFor(dish.CookID), notify.EventNewOrder, order)

	return order, nil
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID int64, page, limit int) ([]repository.CustomerOrderRow, *Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 5
	}
	offset := (page - 1) * limit

	rows, err := s.orders.ListByCustomer(ctx, customerID, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	total, err := s.orders.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return rows, &Pagination{Total: total, Page: page, TotalPages: totalPages, Limit: limit}, nil
}

func (s *orderService) IncomingOrders(ctx context.Context, cookID int64) ([]repository.CookOrderRow, error) {
	return s.orders.ListByCook(ctx, cookID)
}

func (s *orderService) UpdateStatus(ctx context.Context, cookID, orderID int64, status model.OrderStatus) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	// 归属不符按未找到处理，不泄露订单存在性
	if order.CookID != cookID {
		return ErrOrderNotFound
	}

	if err := CanTransition(order.Status, status, order.PaymentStatus == model.PaymentPaid); err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}

	logger.Info("order status updated",
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)))

	s.notifier.Publish(channelFor(order.CustomerID), notify.EventStatusUpdate, map[string]any{
		"orderId":   orderID,
		"newStatus": status,
	})
	return nil
}

// channelFor 推送通道以用户ID字符串为键
func channelFor(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
