package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/pkg/logger"
)

// ErrAddressNotFound 顾客还没存过地址
var ErrAddressNotFound = errors.New("no address found")

// AddressService 地址维护。订单侧的快照读取直接走 repository.LatestByCustomer。
type AddressService interface {
	// Save 新建或覆盖顾客地址，并把城市同步到 users.location（同步失败只记日志）
	Save(ctx context.Context, addr *model.Address) error

	Get(ctx context.Context, customerID int64) (*model.Address, error)
}

type addressService struct {
	addresses repository.AddressRepository
	users     repository.UserRepository
}

// NewAddressService 创建地址服务
func NewAddressService(addresses repository.AddressRepository, users repository.UserRepository) AddressService {
	return &addressService{addresses: addresses, users: users}
}

func (s *addressService) Save(ctx context.Context, addr *model.Address) error {
	if err := s.addresses.Save(ctx, addr); err != nil {
		return err
	}
	if err := s.users.UpdateLocation(ctx, addr.CustomerID, addr.City); err != nil {
		logger.Warn("failed to sync user location",
			zap.Int64("customer_id", addr.CustomerID),
			zap.Error(err))
	}
	return nil
}

func (s *addressService) Get(ctx context.Context, customerID int64) (*model.Address, error) {
	addr, err := s.addresses.GetByCustomer(ctx, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return addr, nil
}
