package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
)

// MessageRepository 消息仓储接口
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error

	// Conversation 双向会话，按时间正序
	Conversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error)

	// CustomersChattedWith 与某家厨有过会话的顾客去重列表
	CustomersChattedWith(ctx context.Context, cookID int64) ([]UserBrief, error)
}

type gormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓储
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

func (r *gormMessageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormMessageRepository) Conversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error) {
	var msgs []*model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("timestamp ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *gormMessageRepository) CustomersChattedWith(ctx context.Context, cookID int64) ([]UserBrief, error) {
	var briefs []UserBrief
	err := r.db.WithContext(ctx).
		Table("users").
		Select("DISTINCT users.id, users.name").
		Joins("JOIN messages ON (users.id = messages.sender_id AND messages.receiver_id = ?) OR (users.id = messages.receiver_id AND messages.sender_id = ?)", cookID, cookID).
		Where("users.role = ?", model.RoleCustomer).
		Scan(&briefs).Error
	if err != nil {
		return nil, err
	}
	return briefs, nil
}
