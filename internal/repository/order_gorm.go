package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
)

// GormOrderRepository 基于 gorm 的订单仓储实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create 创建订单
func (r *GormOrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetByID 根据订单ID查询订单
func (r *GormOrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer 顾客订单分页列表
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID int64, offset, limit int) ([]CustomerOrderRow, error) {
	var rows []CustomerOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, dishes.name AS dish_name, orders.quantity, orders.total_price, orders.status, orders.order_time, users.name AS cook_name").
		Joins("JOIN dishes ON orders.dish_id = dishes.id").
		Joins("JOIN users ON orders.cook_id = users.id").
		Where("orders.customer_id = ?", customerID).
		Order("orders.order_time DESC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByCustomer 顾客订单总数
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

// ListByCook 家厨来单列表
func (r *GormOrderRepository) ListByCook(ctx context.Context, cookID int64) ([]CookOrderRow, error) {
	var rows []CookOrderRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, dishes.name AS dish_name, orders.quantity, orders.total_price, orders.status, orders.payment_status, orders.order_time, users.name AS customer_name, orders.delivery_address").
		Joins("JOIN dishes ON orders.dish_id = dishes.id").
		Joins("JOIN users ON orders.customer_id = users.id").
		Where("orders.cook_id = ?", cookID).
		Order("orders.order_time DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

// MarkPaid 支付回调置 paid。paid→paid 重写不报错（webhook 重放安全），
// 影响行数交给调用方判断是否告警。
func (r *GormOrderRepository) MarkPaid(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status":         model.StatusPaid,
			"payment_status": model.PaymentPaid,
		})
	return res.RowsAffected, res.Error
}

// PaidReceipt 查询收据行
func (r *GormOrderRepository) PaidReceipt(ctx context.Context, orderID, customerID int64) (*ReceiptRow, error) {
	var row ReceiptRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.total_price, orders.order_time, dishes.name AS dish_name, users.name AS cook_name").
		Joins("JOIN dishes ON orders.dish_id = dishes.id").
		Joins("JOIN users ON orders.cook_id = users.id").
		Where("orders.id = ? AND orders.customer_id = ? AND orders.payment_status = ?", orderID, customerID, model.PaymentPaid).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
