package model

import "time"

// OrderStatus 订单状态（closed enum，转移规则见 service.CanTransition）
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid" // 仅 webhook 回调路径写入
	StatusAccepted  OrderStatus = "accepted"
	StatusPreparing OrderStatus = "preparing"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Order 订单。total_price 在创建时一次性算定，菜品后续调价不回溯；
// delivery_address 是下单时刻的地址快照，不是外键。
type Order struct {
	ID              int64         `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID      int64         `json:"customer_id" gorm:"index:idx_order_customer;not null"`
	CookID          int64         `json:"cook_id" gorm:"index:idx_order_cook;not null"`
	DishID          int64         `json:"dish_id" gorm:"not null"`
	Quantity        int           `json:"quantity" gorm:"not null"`
	TotalPrice      float64       `json:"total_price" gorm:"type:decimal(10,2);not null"`
	DeliveryAddress string        `json:"delivery_address" gorm:"type:text;not null"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(16);not null;default:unpaid"`
	OrderTime       time.Time     `json:"order_time" gorm:"column:order_time;autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// Terminal 终态订单不再接受任何状态变更
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}
