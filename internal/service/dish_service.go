package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/pkg/logger"
)

var (
	ErrNotDishOwner = errors.New("not authorized to modify this dish")

	// ErrNoCityOnFile 顾客没有地址就无法按城市筛菜
	ErrNoCityOnFile = errors.New("no address found, please update your address to view dishes")
)

// DishInput 创建 / 更新菜品的业务入参
type DishInput struct {
	Name        string
	Description string
	Price       float64
	Cuisine     string
	IsVeg       bool
}

// DishService 菜品管理 + 顾客按城市浏览（带 redis 缓存）
type DishService interface {
	Create(ctx context.Context, cookID int64, in DishInput, imageURL string) (*model.Dish, error)
	GetByID(ctx context.Context, id int64) (*model.Dish, error)
	Update(ctx context.Context, cookID, dishID int64, in DishInput) (*model.Dish, error)
	Delete(ctx context.Context, cookID, dishID int64) error

	// ListForCook 家厨自己的菜品
	ListForCook(ctx context.Context, cookID int64) ([]repository.DishRow, error)

	// ListForCustomer 按顾客最新地址的城市筛家厨菜品
	ListForCustomer(ctx context.Context, customerID int64) ([]repository.DishRow, error)
}

type dishService struct {
	dishes    repository.DishRepository
	users     repository.UserRepository
	addresses repository.AddressRepository
	cache     *redis.Client // nil = 不启用缓存
	cacheTTL  time.Duration
}

// NewDishService 创建菜品服务；cache 可为 nil
func NewDishService(
	dishes repository.DishRepository,
	users repository.UserRepository,
	addresses repository.AddressRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) DishService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &dishService{dishes: dishes, users: users, addresses: addresses, cache: cache, cacheTTL: cacheTTL}
}

func cityCacheKey(city string) string {
	return fmt.Sprintf("dishes:city:%s", strings.ToLower(city))
}

func (s *dishService) Create(ctx context.Context, cookID int64, in DishInput, imageURL string) (*model.Dish, error) {
	dish := &model.Dish{
		CookID:      cookID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cuisine:     in.Cuisine,
		IsVeg:       in.IsVeg,
		ImageURL:    imageURL,
	}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.invalidateCity(ctx, cookID)
	return dish, nil
}

func (s *dishService) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *dishService) Update(ctx context.Context, cookID, dishID int64, in DishInput) (*model.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	if dish.CookID != cookID {
		return nil, ErrNotDishOwner
	}

	dish.Name = in.Name
	dish.Description = in.Description
	dish.Price = in.Price
	dish.Cuisine = in.Cuisine
	dish.IsVeg = in.IsVeg
	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, err
	}
	s.invalidateCity(ctx, cookID)
	return dish, nil
}

func (s *dishService) Delete(ctx context.Context, cookID, dishID int64) error {
	dish, err := s.dishes.GetByID(ctx, dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDishNotFound
	}
	if err != nil {
		return err
	}
	if dish.CookID != cookID {
		return ErrNotDishOwner
	}
	if err := s.dishes.Delete(ctx, dishID); err != nil {
		return err
	}
	s.invalidateCity(ctx, cookID)
	return nil
}

func (s *dishService) ListForCook(ctx context.Context, cookID int64) ([]repository.DishRow, error) {
	return s.dishes.ListByCook(ctx, cookID)
}

func (s *dishService) ListForCustomer(ctx context.Context, customerID int64) ([]repository.DishRow, error) {
	addr, err := s.addresses.LatestByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if addr == nil || addr.City == "" {
		return nil, ErrNoCityOnFile
	}
	city := strings.ToLower(addr.City)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cityCacheKey(city)).Bytes(); err == nil {
			var rows []repository.DishRow
			if uErr := json.Unmarshal(data, &rows); uErr == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.dishes.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			_ = s.cache.Set(ctx, cityCacheKey(city), payload, s.cacheTTL).Err()
		}
	}
	return rows, nil
}

// invalidateCity 菜品变更后按家厨所在城市清缓存（best-effort）
func (s *dishService) invalidateCity(ctx context.Context, cookID int64) {
	if s.cache == nil {
		return
	}
	cook, err := s.users.GetByID(ctx, cookID)
	if err != nil || cook.Location == "" {
		return
	}
	if err := s.cache.Del(ctx, cityCacheKey(cook.Location)).Err(); err != nil {
		logger.Warn("dish cache invalidation failed",
			zap.String("city", cook.Location),
			zap.Error(err))
	}
}
