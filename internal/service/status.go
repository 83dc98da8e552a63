package service

import (
	"errors"

	"github.com/d60-Lab/homecook/internal/model"
)

var (
	// ErrSameStatus 重复设置当前状态按非法转移处理（不做幂等成功）
	ErrSameStatus = errors.New("order is already in the requested status")

	// ErrPaymentRequired 未支付订单不允许进入 preparing / delivered
	ErrPaymentRequired = errors.New("cannot update status before payment is done")

	// ErrInvalidTransition 状态机不允许的转移
	ErrInvalidTransition = errors.New("invalid status transition")
)

// transitions 当前状态 → 家厨可请求的目标状态。
// paid 是 webhook 专属状态，语义上等同「已付款、待接单」。
// delivered / cancelled 为终态。
var transitions = map[model.OrderStatus]map[model.OrderStatus]bool{
	model.StatusPending: {
		model.StatusAccepted:  true,
		model.StatusCancelled: true,
	},
	model.StatusPaid: {
		model.StatusAccepted:  true,
		model.StatusCancelled: true,
	},
	model.StatusAccepted: {
		model.StatusPreparing: true,
		model.StatusDelivered: true,
		model.StatusCancelled: true,
	},
	model.StatusPreparing: {
		model.StatusDelivered: true,
		model.StatusCancelled: true,
	},
	model.StatusDelivered: {},
	model.StatusCancelled: {},
}

// paymentGated 进入这些状态要求 payment_status = paid
var paymentGated = map[model.OrderStatus]bool{
	model.StatusPreparing: true,
	model.StatusDelivered: true,
}

// CanTransition 判定 current → next 是否合法（paid 为订单支付状态）。
// 返回 nil 表示允许。
func CanTransition(current, next model.OrderStatus, paid bool) error {
	if next == current {
		return ErrSameStatus
	}
	if !transitions[current][next] {
		return ErrInvalidTransition
	}
	if paymentGated[next] && !paid {
		return ErrPaymentRequired
	}
	return nil
}
