package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
)

// DishRow 菜品列表行，带家厨名和所在城市
type DishRow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	CookID       int64   `json:"cook_id"`
	Cuisine      string  `json:"cuisine"`
	IsVeg        bool    `json:"is_veg"`
	ImageURL     string  `json:"image_url"`
	HomecookName string  `json:"homecook_name"`
	Location     string  `json:"location"`
}

// DishRepository 菜品仓储接口
type DishRepository interface {
	Create(ctx context.Context, dish *model.Dish) error
	GetByID(ctx context.Context, id int64) (*model.Dish, error)
	Update(ctx context.Context, dish *model.Dish) error
	Delete(ctx context.Context, id int64) error

	// ListByCook 家厨自己的菜品
	ListByCook(ctx context.Context, cookID int64) ([]DishRow, error)

	// ListByCity 按家厨所在城市模糊匹配（顾客视角）
	ListByCity(ctx context.Context, city string) ([]DishRow, error)
}

type gormDishRepository struct {
	db *gorm.DB
}

// NewDishRepository 创建菜品仓储
func NewDishRepository(db *gorm.DB) DishRepository {
	return &gormDishRepository{db: db}
}

func (r *gormDishRepository) Create(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

func (r *gormDishRepository) GetByID(ctx context.Context, id int64) (*model.Dish, error) {
	var dish model.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *gormDishRepository) Update(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

func (r *gormDishRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Dish{}, id).Error
}

const dishSelect = "dishes.id, dishes.name, dishes.description, dishes.price, dishes.cook_id, dishes.cuisine, dishes.is_veg, dishes.image_url, users.name AS homecook_name, users.location"

func (r *gormDishRepository) ListByCook(ctx context.Context, cookID int64) ([]DishRow, error) {
	var rows []DishRow
	err := r.db.WithContext(ctx).
		Table("dishes").
		Select(dishSelect).
		Joins("JOIN users ON dishes.cook_id = users.id").
		Where("dishes.cook_id = ?", cookID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *gormDishRepository) ListByCity(ctx context.Context, city string) ([]DishRow, error) {
	var rows []DishRow
	err := r.db.WithContext(ctx).
		Table("dishes").
		Select(dishSelect).
		Joins("JOIN users ON dishes.cook_id = users.id").
		Where("LOWER(users.location) LIKE ?", "%"+city+"%").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
