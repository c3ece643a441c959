package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/calltrack/dnc-registry/internal/middleware"
	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/session"
	"github.com/calltrack/dnc-registry/internal/testutil"
	"github.com/calltrack/dnc-registry/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func setupRouter(t *testing.T) (*gin.Engine, session.RevocationStore) {
	gin.SetMode(gin.TestMode)

	testRedis := testutil.SetupTestRedis(t)
	t.Cleanup(func() { testRedis.Teardown(t) })

	revocations, err := session.NewRedisRevocationStore(testRedis.URL)
	assert.NoError(t, err)
	t.Cleanup(func() { revocations.Close() })

	router := gin.New()
	router.Use(middleware.AccessControl(testSecret, revocations))

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/", ok)
	router.GET("/auth/signin", ok)
	router.GET("/dashboard", ok)
	router.GET("/dashboard/users", ok)
	router.GET("/capturar-numero", ok)
	router.GET("/api/dnc", ok)
	router.GET("/api/reports", middleware.RequireRole(models.RoleAdmin), ok)

	return router, revocations
}

func tokenFor(t *testing.T, role models.Role) string {
	user := &models.User{ID: uuid.New(), Username: "someone", Role: role}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	assert.NoError(t, err)
	return token
}

func request(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnonymousAPIGets401(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/api/dnc", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")
}

func TestAnonymousPageRedirectsToSignIn(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/dashboard", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.SignInPath, w.Header().Get("Location"))
}

func TestUserRedirectedFromAdminTree(t *testing.T) {
	router, _ := setupRouter(t)
	token := tokenFor(t, models.RoleUser)

	for _, path := range []string{"/dashboard", "/dashboard/users"} {
		w := request(router, path, token)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, middleware.CapturePath, w.Header().Get("Location"), path)
	}
}

func TestAdminRedirectedFromSellerTree(t *testing.T) {
	router, _ := setupRouter(t)
	token := tokenFor(t, models.RoleAdmin)

	w := request(router, "/capturar-numero", token)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.DashboardHome, w.Header().Get("Location"))
}

func TestAuthenticatedSignInRedirectsHome(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/auth/signin", tokenFor(t, models.RoleAdmin))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.DashboardHome, w.Header().Get("Location"))

	w = request(router, "/auth/signin", tokenFor(t, models.RoleUser))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, middleware.CapturePath, w.Header().Get("Location"))
}

func TestSellerReachesOwnTree(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/capturar-numero", tokenFor(t, models.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvalidTokenTreatedAsAnonymous(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/api/dnc", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRevokedTokenTreatedAsAnonymous(t *testing.T) {
	router, revocations := setupRouter(t)

	user := &models.User{ID: uuid.New(), Username: "someone", Role: models.RoleUser}
	token, err := utils.GenerateToken(user, testSecret, time.Hour)
	assert.NoError(t, err)

	// Works before revocation
	w := request(router, "/api/dnc", token)
	assert.Equal(t, http.StatusOK, w.Code)

	claims, err := utils.ValidateToken(token, testSecret)
	assert.NoError(t, err)
	assert.NoError(t, revocations.Revoke(context.Background(), claims.ID, time.Hour))

	w = request(router, "/api/dnc", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleBlocksWrongRole(t *testing.T) {
	router, _ := setupRouter(t)

	w := request(router, "/api/reports", tokenFor(t, models.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "forbidden")

	w = request(router, "/api/reports", tokenFor(t, models.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenFromCookie(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dnc", nil)
	req.AddCookie(&http.Cookie{Name: middleware.TokenCookieName, Value: tokenFor(t, models.RoleUser)})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
