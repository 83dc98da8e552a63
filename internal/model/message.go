package model

import "time"

// Message 聊天消息（只保证插入序，无额外一致性语义）
type Message struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	SenderID   int64     `json:"sender_id" gorm:"index:idx_msg_sender;not null"`
	ReceiverID int64     `json:"receiver_id" gorm:"index:idx_msg_receiver;not null"`
	Message    string    `json:"message" gorm:"type:text;not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"column:timestamp;autoCreateTime;index"`
}

func (Message) TableName() string { return "messages" }
