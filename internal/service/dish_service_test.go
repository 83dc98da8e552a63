package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
)

func newDishFixture(t *testing.T, cache *redis.Client) (DishService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewDishService(
		repository.NewDishRepository(db),
		repository.NewUserRepository(db),
		repository.NewAddressRepository(db),
		cache,
		time.Minute,
	)
	return svc, db
}

func TestDishCRUDOwnership(t *testing.T) {
	svc, db := newDishFixture(t, nil)
	cook := seedUser(t, db, "chef-meera", model.RoleHomecook)
	other := seedUser(t, db, "chef-raj", model.RoleHomecook)

	dish, err := svc.Create(ctxb(), cook.ID, DishInput{Name: "Thali", Price: 150, Cuisine: "indian", IsVeg: true}, "/uploads/thali.jpg")
	require.NoError(t, err)
	require.NotZero(t, dish.ID)

	t.Run("非所有者不能更新", func(t *testing.T) {
		_, err := svc.Update(ctxb(), other.ID, dish.ID, DishInput{Name: "X", Price: 1})
		assert.ErrorIs(t, err, ErrNotDishOwner)
	})

	t.Run("非所有者不能删除", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctxb(), other.ID, dish.ID), ErrNotDishOwner)
	})

	t.Run("所有者更新", func(t *testing.T) {
		got, err := svc.Update(ctxb(), cook.ID, dish.ID, DishInput{Name: "Special Thali", Price: 180, Cuisine: "indian", IsVeg: true})
		require.NoError(t, err)
		assert.Equal(t, "Special Thali", got.Name)
		assert.InDelta(t, 180, got.Price, 0.001)
	})

	t.Run("不存在的菜品", func(t *testing.T) {
		_, err := svc.Update(ctxb(), cook.ID, 999, DishInput{})
		assert.ErrorIs(t, err, ErrDishNotFound)
		assert.ErrorIs(t, svc.Delete(ctxb(), cook.ID, 999), ErrDishNotFound)
	})

	t.Run("所有者删除", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctxb(), cook.ID, dish.ID))
		_, err := svc.GetByID(ctxb(), dish.ID)
		assert.ErrorIs(t, err, ErrDishNotFound)
	})
}

func TestListForCustomerByCity(t *testing.T) {
	svc, db := newDishFixture(t, nil)
	mumbai := seedUser(t, db, "chef-meera", model.RoleHomecook)
	pune := seedUser(t, db, "chef-raj", model.RoleHomecook)
	require.NoError(t, db.Model(mumbai).Update("location", "Mumbai").Error)
	require.NoError(t, db.Model(pune).Update("location", "Pune").Error)
	seedDish(t, db, mumbai.ID, "Vada Pav", 30)
	seedDish(t, db, pune.ID, "Misal Pav", 60)

	customer := seedUser(t, db, "asha", model.RoleCustomer)

	t.Run("没有地址报错", func(t *testing.T) {
		_, err := svc.ListForCustomer(ctxb(), customer.ID)
		assert.ErrorIs(t, err, ErrNoCityOnFile)
	})

	seedAddress(t, db, customer.ID, "Mumbai")

	t.Run("只看到本城市的菜", func(t *testing.T) {
		rows, err := svc.ListForCustomer(ctxb(), customer.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Vada Pav", rows[0].Name)
		assert.Equal(t, "chef-meera", rows[0].HomecookName)
	})
}

func TestListForCustomerCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc, db := newDishFixture(t, cache)

	cook := seedUser(t, db, "chef-meera", model.RoleHomecook)
	require.NoError(t, db.Model(cook).Update("location", "Mumbai").Error)
	seedDish(t, db, cook.ID, "Vada Pav", 30)
	customer := seedUser(t, db, "asha", model.RoleCustomer)
	seedAddress(t, db, customer.ID, "Mumbai")

	rows, err := svc.ListForCustomer(ctxb(), customer.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, mr.Exists("dishes:city:mumbai"), "miss populates cache")

	// 第二次命中缓存：绕过 DB 的变更不可见
	seedDish(t, db, cook.ID, "Pav Bhaji", 70)
	rows, err = svc.ListForCustomer(ctxb(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "served from cache")

	// 走服务层改菜，缓存按家厨城市失效
	_, err = svc.Create(ctxb(), cook.ID, DishInput{Name: "Sabudana Khichdi", Price: 50}, "")
	require.NoError(t, err)
	assert.False(t, mr.Exists("dishes:city:mumbai"), "mutation invalidates cache")

	rows, err = svc.ListForCustomer(ctxb(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "fresh read after invalidation")
}

func TestListForCustomerCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc, db := newDishFixture(t, cache)

	cook := seedUser(t, db, "chef-meera", model.RoleHomecook)
	require.NoError(t, db.Model(cook).Update("location", "Mumbai").Error)
	seedDish(t, db, cook.ID, "Vada Pav", 30)
	customer := seedUser(t, db, "asha", model.RoleCustomer)
	seedAddress(t, db, customer.ID, "Mumbai")

	_, err := svc.ListForCustomer(ctxb(), customer.ID)
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("dishes:city:mumbai"), "entry expires with TTL")
}
