package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
)

func TestAddressSaveSyncsLocation(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	svc := NewAddressService(repository.NewAddressRepository(db), users)

	customer := seedUser(t, db, "asha", model.RoleCustomer)

	addr := &model.Address{
		CustomerID:  customer.ID,
		FullName:    "Asha Rao",
		PhoneNumber: "9876543210",
		Building:    "12B",
		Street:      "MG Road",
		City:        "Mumbai",
		State:       "MH",
		Pincode:     "411001",
		Country:     "India",
	}
	require.NoError(t, svc.Save(ctxb(), addr))

	got, err := users.GetByID(ctxb(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", got.Location)

	t.Run("再次保存覆盖同一行", func(t *testing.T) {
		addr.City = "Pune"
		require.NoError(t, svc.Save(ctxb(), addr))

		saved, err := svc.Get(ctxb(), customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pune", saved.City)

		var count int64
		require.NoError(t, db.Model(&model.Address{}).Where("customer_id = ?", customer.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestAddressGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(repository.NewAddressRepository(db), repository.NewUserRepository(db))

	_, err := svc.Get(ctxb(), 999)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressSnapshotFormat(t *testing.T) {
	a := &model.Address{
		FullName:    "Asha Rao",
		PhoneNumber: "9876543210",
		Building:    "12B",
		Street:      "MG Road",
		City:        "Mumbai",
		State:       "MH",
		Pincode:     "411001",
		Country:     "India",
	}
	assert.Equal(t, "Asha Rao, 9876543210, 12B, MG Road, Mumbai, MH, 411001, India", a.Snapshot())
}
