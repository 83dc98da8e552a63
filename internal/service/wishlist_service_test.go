package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
)

func TestWishlist(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(repository.NewWishlistRepository(db))

	cook := seedUser(t, db, "chef-meera", model.RoleHomecook)
	customer := seedUser(t, db, "asha", model.RoleCustomer)
	dish := seedDish(t, db, cook.ID, "Paneer Tikka", 120.50)

	require.NoError(t, svc.Add(ctxb(), customer.ID, dish.ID))

	t.Run("重复收藏冲突", func(t *testing.T) {
		assert.ErrorIs(t, svc.Add(ctxb(), customer.ID, dish.ID), ErrAlreadyWishlisted)
	})

	t.Run("列表带菜品与家厨信息", func(t *testing.T) {
		rows, err := svc.List(ctxb(), customer.ID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, dish.ID, rows[0].DishID)
		assert.Equal(t, "Paneer Tikka", rows[0].DishName)
		assert.Equal(t, "chef-meera", rows[0].CookName)
	})

	t.Run("移除后再移除报错", func(t *testing.T) {
		require.NoError(t, svc.Remove(ctxb(), customer.ID, dish.ID))
		assert.ErrorIs(t, svc.Remove(ctxb(), customer.ID, dish.ID), ErrNotInWishlist)

		rows, err := svc.List(ctxb(), customer.ID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
