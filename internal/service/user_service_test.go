package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/homecook/internal/model"
	"github.com/d60-Lab/homecook/internal/repository"
)

func newUserFixture(t *testing.T) UserService {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db), AuthConfig{Secret: "test-secret", TTL: time.Hour})
}

func TestRegister(t *testing.T) {
	svc := newUserFixture(t)

	user, err := svc.Register(ctxb(), "Asha", "Asha@Example.com", "s3cret", model.RoleCustomer, "Mumbai")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "asha@example.com", user.Email, "email normalized to lowercase")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
	assert.NotEqual(t, "s3cret", user.Password)

	t.Run("重复邮箱拒绝", func(t *testing.T) {
		_, err := svc.Register(ctxb(), "Other", "ASHA@example.com", "x", model.RoleCustomer, "")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	svc := newUserFixture(t)
	user, err := svc.Register(ctxb(), "Asha", "asha@example.com", "s3cret", model.RoleCustomer, "Mumbai")
	require.NoError(t, err)

	t.Run("正确密码签发token", func(t *testing.T) {
		token, got, err := svc.Login(ctxb(), "Asha@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.EqualValues(t, user.ID, claims["id"])
		assert.Equal(t, "asha@example.com", claims["email"])
		assert.Equal(t, model.RoleCustomer, claims["role"])
	})

	t.Run("错误密码", func(t *testing.T) {
		_, _, err := svc.Login(ctxb(), "asha@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("不存在的邮箱", func(t *testing.T) {
		_, _, err := svc.Login(ctxb(), "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestListHomecooks(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db), AuthConfig{Secret: "s"})

	seedUser(t, db, "chef-meera", model.RoleHomecook)
	seedUser(t, db, "asha", model.RoleCustomer)

	cooks, err := svc.ListHomecooks(ctxb())
	require.NoError(t, err)
	require.Len(t, cooks, 1)
	assert.Equal(t, "chef-meera", cooks[0].Name)
}
