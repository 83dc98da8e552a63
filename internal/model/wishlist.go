package model

import "time"

// WishlistItem 心愿单条目，(customer_id, dish_id) 复合唯一键防重复收藏
type WishlistItem struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID int64     `json:"customer_id" gorm:"index:idx_wish_pair,unique;not null"`
	DishID     int64     `json:"dish_id" gorm:"index:idx_wish_pair,unique;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (WishlistItem) TableName() string { return "wishlist" }
