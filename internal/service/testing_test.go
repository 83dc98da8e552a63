package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedDish(t *testing.T, db *gorm.DB, cookID int64, name string, price float64) *model.Dish {
	t.Helper()
	d := &model.Dish{CookID: cookID, Name: name, Price: price, Cuisine: "indian", IsVeg: true}
	require.NoError(t, db.Create(d).Error)
	return d
}

func seedAddress(t *testing.T, db *gorm.DB, customerID int64, city string) *model.Address {
	t.Helper()
	a := &model.Address{
		CustomerID:  customerID,
		FullName:    "Asha Rao",
		PhoneNumber: "9876543210",
		Building:    "12B",
		Street:      "MG Road",
		City:        city,
		State:       "MH",
		Pincode:     "411001",
		Country:     "India",
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

type published struct {
	Channel string
	Event   string
	Payload any
}

// recordingNotifier 记录所有 Publish 调用，供断言
type recordingNotifier struct {
	mu     sync.Mutex
	events []published
}

func (n *recordingNotifier) Publish(channel, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{Channel: channel, Event: event, Payload: payload})
}

func (n *recordingNotifier) all() []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]published, len(n.events))
	copy(out, n.events)
	return out
}

func ctxb() context.Context { return context.Background() }
