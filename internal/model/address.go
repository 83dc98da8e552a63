package model

import (
	"fmt"
	"time"
)

// Address 顾客收货地址。下单时按 updated_at 取最新一条渲染成快照，
// 之后地址再怎么改都不影响已生成的订单。
type Address struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID  int64     `json:"customer_id" gorm:"index:idx_addr_customer;not null"`
	FullName    string    `json:"full_name" gorm:"type:varchar(100);not null"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(20);not null"`
	Building    string    `json:"building" gorm:"type:varchar(100);not null"`
	Street      string    `json:"street" gorm:"type:varchar(100);not null"`
	City        string    `json:"city" gorm:"type:varchar(50);not null"`
	State       string    `json:"state" gorm:"type:varchar(50);not null"`
	Pincode     string    `json:"pincode" gorm:"type:varchar(10);not null"`
	Country     string    `json:"country" gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"index:idx_addr_updated"`
}

func (Address) TableName() string { return "addresses" }

// Snapshot 渲染为不可变的投递地址串
func (a *Address) Snapshot() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		a.FullName, a.PhoneNumber, a.Building, a.Street, a.City, a.State, a.Pincode, a.Country)
}
