package service

import (
	"context"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/notify"
	"github.com/d60-Lab/homecook/internal/repository"
)

// MessageService 聊天消息：落库 + 转发到接收方通道
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID int64, text string) (*model.Message, error)
	Conversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error)
	CustomersChattedWith(ctx context.Context, cookID int64) ([]repository.UserBrief, error)
}

type messageService struct {
	messages repository.MessageRepository
	notifier Notifier
}

// NewMessageService 创建消息服务
func NewMessageService(messages repository.MessageRepository, notifier Notifier) MessageService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &messageService{messages: messages, notifier: notifier}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID int64, text string) (*model.Message, error) {
	msg := &model.Message{SenderID: senderID, ReceiverID: receiverID, Message: text}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	// 在线接收方实时收到，离线即丢（无离线队列）
	s.notifier.Publish(channelFor(receiverID), notify.EventReceiveMessage, msg)
	return msg, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, otherID int64) ([]*model.Message, error) {
	return s.messages.Conversation(ctx, userID, otherID)
}

func (s *messageService) CustomersChattedWith(ctx context.Context, cookID int64) ([]repository.UserBrief, error) {
	return s.messages.CustomersChattedWith(ctx, cookID)
}
