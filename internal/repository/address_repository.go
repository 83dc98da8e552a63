package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
)

// AddressRepository 地址仓储接口
type AddressRepository interface {
	// Save 每个顾客维护一条地址行：有则更新，无则插入
	Save(ctx context.Context, addr *model.Address) error

	// GetByCustomer 查询顾客地址（任意一条）
	GetByCustomer(ctx context.Context, customerID int64) (*model.Address, error)

	// LatestByCustomer 按 updated_at 倒序取最新一条；没有地址返回 (nil, nil)
	LatestByCustomer(ctx context.Context, customerID int64) (*model.Address, error)
}

type gormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &gormAddressRepository{db: db}
}

func (r *gormAddressRepository) Save(ctx context.Context, addr *model.Address) error {
	var existing model.Address
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", addr.CustomerID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(addr).Error
	}
	if err != nil {
		return err
	}
	addr.ID = existing.ID
	addr.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(addr).Error
}

func (r *gormAddressRepository) GetByCustomer(ctx context.Context, customerID int64) (*model.Address, error) {
	var addr model.Address
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&addr).Error
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *gormAddressRepository) LatestByCustomer(ctx context.Context, customerID int64) (*model.Address, error) {
	var addr model.Address
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		First(&addr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}
