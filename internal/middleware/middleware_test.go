package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meeplemeet/meeplemeet-api/internal/models"
	appErrors "github.com/meeplemeet/meeplemeet-api/pkg/errors"
)

type tokenStub struct {
	claims *models.JWTClaims
	err    error
	seen   string
}

func (s *tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	s.seen = token
	return s.claims, s.err
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": Claims(c)})
	})
	r.GET("/accounts/:id", handlers...)
	return r
}

func perform(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTRequiresBearerToken(t *testing.T) {
	tokens := &tokenStub{claims: &models.JWTClaims{AccountID: "acc-1", Role: models.RoleUser}}
	r := newTestRouter(JWT(tokens))

	assert.Equal(t, http.StatusUnauthorized, perform(r, "/accounts/acc-1", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "/accounts/acc-1", "Basic abc").Code)

	w := perform(r, "/accounts/acc-1", "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "good-token", tokens.seen)
	assert.Contains(t, w.Body.String(), "acc-1")
}

func TestJWTRejectsInvalidToken(t *testing.T) {
	tokens := &tokenStub{err: appErrors.Clone(appErrors.ErrUnauthorized, "token expired")}
	r := newTestRouter(JWT(tokens))

	w := perform(r, "/accounts/acc-1", "Bearer stale")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestOptionalJWTNeverBlocks(t *testing.T) {
	tokens := &tokenStub{err: appErrors.ErrUnauthorized}
	r := newTestRouter(OptionalJWT(tokens))

	w := perform(r, "/accounts/acc-1", "Bearer broken")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"account":null`)
}

func TestRBACAllowsRoleOrSelf(t *testing.T) {
	cases := []struct {
		name   string
		claims *models.JWTClaims
		path   string
		status int
	}{
		{"admin", &models.JWTClaims{AccountID: "admin-1", Role: models.RoleAdmin}, "/accounts/acc-1", http.StatusOK},
		{"self", &models.JWTClaims{AccountID: "acc-1", Role: models.RoleUser}, "/accounts/acc-1", http.StatusOK},
		{"other user", &models.JWTClaims{AccountID: "acc-2", Role: models.RoleUser}, "/accounts/acc-1", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(JWT(&tokenStub{claims: tc.claims}), RBAC(Self, string(models.RoleAdmin)))
			assert.Equal(t, tc.status, perform(r, tc.path, "Bearer t").Code)
		})
	}
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	r := newTestRouter(RequireRoles(models.RoleAdmin))
	assert.Equal(t, http.StatusUnauthorized, perform(r, "/accounts/acc-1", "").Code)
}

func TestSetCacheHitWritesMetaAndHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/shops/:id", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})

	w := perform(r, "/shops/shop-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get(CacheHeader))
	assert.Equal(t, true, meta[cacheHitKey])
	assert.Contains(t, meta, "processing_time_ms")
}

type observerStub struct {
	paths    []string
	statuses []int
}

func (o *observerStub) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.paths = append(o.paths, path)
	o.statuses = append(o.statuses, status)
}

func TestMetricsUsesRouteTemplates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &observerStub{}
	r := gin.New()
	r.Use(Metrics(observer, "/health"))
	r.GET("/rentals/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, "/rentals/r-1", "")
	perform(r, "/health", "")
	perform(r, "/wp-admin.php", "")

	assert.Equal(t, []string{"/rentals/:id", unmatchedRoute}, observer.paths)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, observer.statuses)
}
