package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/homecook/internal/model"
)

// WishlistRow 心愿单列表行（菜品 + 家厨信息）
type WishlistRow struct {
	DishID   int64   `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	IsVeg    bool    `json:"is_veg"`
	Cuisine  string  `json:"cuisine"`
	CookName string  `json:"cook_name"`
	Rating   float64 `json:"rating"`
}

// WishlistRepository 心愿单仓储接口
type WishlistRepository interface {
	// Add 收藏；已存在时返回 (false, nil)
	Add(ctx context.Context, customerID, dishID int64) (bool, error)

	// Remove 取消收藏；不存在时返回 (false, nil)
	Remove(ctx context.Context, customerID, dishID int64) (bool, error)

	ListByCustomer(ctx context.Context, customerID int64) ([]WishlistRow, error)
}

type gormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &gormWishlistRepository{db: db}
}

func (r *gormWishlistRepository) Add(ctx context.Context, customerID, dishID int64) (bool, error) {
	item := &model.WishlistItem{CustomerID: customerID, DishID: dishID}
	// 复合唯一键 + DoNothing：重复收藏表现为 0 行插入
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormWishlistRepository) Remove(ctx context.Context, customerID, dishID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("customer_id = ? AND dish_id = ?", customerID, dishID).
		Delete(&model.WishlistItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormWishlistRepository) ListByCustomer(ctx context.Context, customerID int64) ([]WishlistRow, error) {
	var rows []WishlistRow
	err := r.db.WithContext(ctx).
		Table("wishlist").
		Select("wishlist.dish_id, dishes.name AS dish_name, dishes.price, dishes.image_url, dishes.is_veg, dishes.cuisine, users.name AS cook_name, users.rating").
		Joins("JOIN dishes ON wishlist.dish_id = dishes.id").
		Joins("JOIN users ON dishes.cook_id = users.id").
		Where("wishlist.customer_id = ?", customerID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
