package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/notify"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/pkg/logger"
)

var (
	ErrNotYourOrder = errors.New("you are not authorized to pay for this order")
	ErrAlreadyPaid  = errors.New("order already paid")

	// ErrReceiptUnavailable 未支付或归属不符的订单没有收据
	ErrReceiptUnavailable = errors.New("receipt not available for this order")

	// ErrBadWebhookPayload 签名合法但缺少 orderId metadata
	ErrBadWebhookPayload = errors.New("webhook payload missing order metadata")

	// ErrBadSignature 签名校验失败，不触碰任何状态
	ErrBadSignature = errors.New("webhook signature verification failed")
)

// PaymentConfig 支付侧配置（由 config.StripeConfig 填充）
type PaymentConfig struct {
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURL     string
}

// checkoutSessionAPI narrows the Stripe client so tests can fake it.
type checkoutSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// PaymentService Stripe 适配：建会话、消费回调、出收据
type PaymentService interface {
	// CreateCheckoutSession 为订单铸一个 Stripe Checkout 会话，返回托管页 URL
	CreateCheckoutSession(ctx context.Context, customerID, orderID int64) (string, error)

	// HandleWebhook 消费支付回调。必须传原始请求体字节：签名覆盖精确字节，
	// 任何反序列化再序列化都会使其失效。返回 error 即 400；nil 即 200。
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// Receipt 渲染已支付订单的 PDF 收据
	Receipt(ctx context.Context, customerID, orderID int64) ([]byte, error)
}

type paymentService struct {
	orders   repository.OrderRepository
	sessions checkoutSessionAPI
	notifier Notifier
	cfg      PaymentConfig
}

// NewPaymentService 创建支付服务。sessions 传 nil 时用 apiKey 初始化官方 client。
func NewPaymentService(
	orders repository.OrderRepository,
	notifier Notifier,
	apiKey string,
	cfg PaymentConfig,
	sessions checkoutSessionAPI,
) PaymentService {
	if sessions == nil {
		sc := client.New(apiKey, nil)
		sessions = sc.CheckoutSessions
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.Currency == "" {
		cfg.Currency = "inr"
	}
	return &paymentService{orders: orders, sessions: sessions, notifier: notifier, cfg: cfg}
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, customerID, orderID int64) (string, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrOrderNotFound
	}
	if err != nil {
		return "", err
	}
	if order.CustomerID != customerID {
		return "", ErrNotYourOrder
	}
	if order.PaymentStatus == model.PaymentPaid {
		return "", ErrAlreadyPaid
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(s.cfg.SuccessURL),
		CancelURL:          stripe.String(s.cfg.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.cfg.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(order.TotalPrice * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Order #%d", orderID)),
					},
				},
			},
		},
		Metadata: map[string]string{
			"orderId": strconv.FormatInt(orderID, 10),
		},
	}
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	logger.Info("stripe session created",
		zap.Int64("order_id", orderID),
		zap.String("session_id", sess.ID))
	return sess.URL, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		logger.Warn("webhook signature error", zap.Error(err))
		return ErrBadSignature
	}

	// 其余事件类型直接 200 确认，避免 provider 重试
	if event.Type != "checkout.session.completed" {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return ErrBadWebhookPayload
	}
	rawID, ok := sess.Metadata["orderId"]
	if !ok || rawID == "" {
		return ErrBadWebhookPayload
	}
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return ErrBadWebhookPayload
	}

	affected, err := s.orders.MarkPaid(ctx, orderID)
	if err != nil {
		// 业务侧失败也回 200：非 2xx 会触发 provider 重试，
		// 重放一个结构上已处理的回调没有意义
		logger.Error("failed to mark order paid", zap.Int64("order_id", orderID), zap.Error(err))
		return nil
	}
	if affected == 0 {
		logger.Warn("webhook for unknown or already updated order", zap.Int64("order_id", orderID))
		return nil
	}

	logger.Info("order marked as paid", zap.Int64("order_id", orderID))

	if order, err := s.orders.GetByID(ctx, orderID); err == nil {
		s.notifier.Publish(channelFor(order.CustomerID), notify.EventStatusUpdate, map[string]any{
			"orderId":   orderID,
			"newStatus": model.StatusPaid,
		})
	}
	return nil
}

func (s *paymentService) Receipt(ctx context.Context, customerID, orderID int64) ([]byte, error) {
	row, err := s.orders.PaidReceipt(ctx, orderID, customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReceiptUnavailable
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderReceipt(&buf, row); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
