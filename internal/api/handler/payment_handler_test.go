package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
	"github.com/d60-Lab/homecook/internal/service"
	"github.com/d60-Lab/homecook/pkg/database"
)

type stubPaymentService struct {
	service.PaymentService

	gotPayload   []byte
	gotSignature string
	webhookErr   error
}

func (s *stubPaymentService) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	s.gotPayload = payload
	s.gotSignature = signature
	return s.webhookErr
}

func newWebhookRouter(stub *stubPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, stub, nil, nil, nil, "")
	r := gin.New()
	r.POST("/api/payments/webhook", h.StripeWebhook)
	return r
}

func TestStripeWebhookPassesRawBody(t *testing.T) {
	stub := &stubPaymentService{}
	r := newWebhookRouter(stub)

	body := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)
	// 原始字节原样到达服务层，签名头一并透传
	assert.Equal(t, body, stub.gotPayload)
	assert.Equal(t, "t=1,v1=abc", stub.gotSignature)
}

func TestStripeWebhookBadSignatureIs400(t *testing.T) {
	stub := &stubPaymentService{webhookErr: service.ErrBadSignature}
	r := newWebhookRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookBadPayloadIs400(t *testing.T) {
	stub := &stubPaymentService{webhookErr: service.ErrBadWebhookPayload}
	r := newWebhookRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func stripeSignature(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// 不打桩：真实 payment service + 内存 sqlite，亲手签名的回调走完整链路
func TestStripeWebhookEndToEnd(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	order := &model.Order{
		ID:              42,
		CustomerID:      7,
		CookID:          3,
		DishID:          1,
		Quantity:        1,
		TotalPrice:      100,
		DeliveryAddress: "addr",
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentUnpaid,
	}
	require.NoError(t, db.Create(order).Error)

	orders := repository.NewOrderRepository(db)
	payments := service.NewPaymentService(orders, nil, "sk_test_x", service.PaymentConfig{
		WebhookSecret: "whsec_e2e",
	}, nil)

	gin.SetMode(gin.TestMode)
	h := New(nil, nil, nil, nil, payments, nil, nil, nil, "")
	r := gin.New()
	r.POST("/api/payments/webhook", h.StripeWebhook)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session","metadata":{"orderId":"42"}}}}`)

	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", stripeSignature(payload, "whsec_e2e"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.Order
	require.NoError(t, db.First(&got, 42).Error)
	assert.Equal(t, model.StatusPaid, got.Status)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
}
