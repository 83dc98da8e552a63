package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/homecook/internal/model"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, secret string, id int64, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"id":    id,
		"email": "asha@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(testSecret)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		ident, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": ident.ID, "role": ident.Role})
	})
	r.GET("/protected", chain...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	t.Run("缺少头部", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	})

	t.Run("非Bearer格式", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token abc").Code)
	})

	t.Run("签名不对", func(t *testing.T) {
		bad := issueToken(t, "other-secret", 7, model.RoleCustomer)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+bad).Code)
	})

	t.Run("过期token", func(t *testing.T) {
		claims := jwt.MapClaims{"id": float64(7), "exp": time.Now().Add(-time.Hour).Unix()}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+expired).Code)
	})

	t.Run("合法token注入身份", func(t *testing.T) {
		token := issueToken(t, testSecret, 7, model.RoleCustomer)
		w := doGet(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"id":7`)
	})
}

func TestRequireRoles(t *testing.T) {
	r := newAuthRouter(RequireRoles(model.RoleHomecook))

	t.Run("角色不符403", func(t *testing.T) {
		token := issueToken(t, testSecret, 7, model.RoleCustomer)
		assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+token).Code)
	})

	t.Run("角色匹配放行", func(t *testing.T) {
		token := issueToken(t, testSecret, 3, model.RoleHomecook)
		assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)
	})
}
