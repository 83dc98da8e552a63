package model

import "time"

// Dish 菜品（家厨发布）
type Dish struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CookID      int64     `json:"cook_id" gorm:"index:idx_dish_cook;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Cuisine     string    `json:"cuisine" gorm:"type:varchar(50)"`
	IsVeg       bool      `json:"is_veg"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Dish) TableName() string { return "dishes" }
