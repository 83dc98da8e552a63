package model

import "time"

// 用户角色
const (
	RoleCustomer = "customer"
	RoleHomecook = "homecook"
)

// User 用户（顾客 / 家厨共用一张表，按 role 区分）
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(100);not null"` // bcrypt hash
	Role      string    `json:"role" gorm:"type:varchar(16);index;not null"`
	Location  string    `json:"location" gorm:"type:varchar(100)"`
	Rating    float64   `json:"rating" gorm:"type:decimal(3,2);default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
