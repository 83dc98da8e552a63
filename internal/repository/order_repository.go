package repository

import (
	"context"
	"time"

	"github.com/d60-Lab/homecook/internal/model"
)

// CustomerOrderRow 顾客订单列表行（联表取菜名 / 厨师名）
type CustomerOrderRow struct {
	ID         int64             `json:"id"`
	DishName   string            `json:"dish_name"`
	Quantity   int               `json:"quantity"`
	TotalPrice float64           `json:"total_price"`
	Status     model.OrderStatus `json:"status"`
	OrderTime  time.Time         `json:"order_time"`
	CookName   string            `json:"cook_name"`
}

// CookOrderRow 家厨侧来单列表行，含地址快照
type CookOrderRow struct {
	ID              int64               `json:"id"`
	DishName        string              `json:"dish_name"`
	Quantity        int                 `json:"quantity"`
	TotalPrice      float64             `json:"total_price"`
	Status          model.OrderStatus   `json:"status"`
	PaymentStatus   model.PaymentStatus `json:"payment_status"`
	OrderTime       time.Time           `json:"order_time"`
	CustomerName    string              `json:"customer_name"`
	DeliveryAddress string              `json:"delivery_address"`
}

// ReceiptRow 收据渲染所需字段（仅已支付订单）
type ReceiptRow struct {
	ID         int64
	TotalPrice float64
	OrderTime  time.Time
	DishName   string
	CookName   string
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *model.Order) error

	// GetByID 根据订单ID查询订单
	GetByID(ctx context.Context, orderID int64) (*model.Order, error)

	// ListByCustomer 顾客订单分页列表
	ListByCustomer(ctx context.Context, customerID int64, offset, limit int) ([]CustomerOrderRow, error)

	// CountByCustomer 顾客订单总数
	CountByCustomer(ctx context.Context, customerID int64) (int64, error)

	// ListByCook 家厨来单列表（不分页，含地址快照）
	ListByCook(ctx context.Context, cookID int64) ([]CookOrderRow, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// MarkPaid 支付回调置 status/payment_status 为 paid，返回影响行数
	MarkPaid(ctx context.Context, orderID int64) (int64, error)

	// PaidReceipt 查询属于该顾客且已支付订单的收据行
	PaidReceipt(ctx context.Context, orderID, customerID int64) (*ReceiptRow, error)
}
