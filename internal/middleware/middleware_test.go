package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/material-rental/internal/identity"
	"github.com/BruksfildServices01/material-rental/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAppChecker struct {
	valid string
}

func (s stubAppChecker) VerifyAppCheck(_ context.Context, token string) error {
	if token != s.valid {
		return errors.New("bad token")
	}
	return nil
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/x", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUserID)})
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOperatorOnly(t *testing.T) {
	verifier := identity.NewJWTVerifier("secret")
	r := newEngine(OperatorOnly(identity.NewGate(verifier, "operator")))

	operator, err := verifier.Sign("operator", time.Hour)
	require.NoError(t, err)
	stranger, err := verifier.Sign("someone", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing", "", http.StatusUnauthorized, "unauthorized"},
		{"garbage", "Bearer nope", http.StatusUnauthorized, "unauthorized"},
		{"wrong subject", "Bearer " + stranger, http.StatusForbidden, "forbidden"},
		{"operator", "Bearer " + operator, http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := do(r, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.code != "" {
				assert.Equal(t, tc.code, gjson.Get(w.Body.String(), "error_code").String())
			} else {
				assert.Equal(t, "operator", gjson.Get(w.Body.String(), "user").String())
			}
		})
	}
}

func TestAppCheck(t *testing.T) {
	r := newEngine(AppCheck(stubAppChecker{valid: "ok"}, "https://shop.example"))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderAppCheck, "ok")
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderAppCheck, "forged")
	req.Header.Set("Origin", "https://shop.example")
	assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderAppCheck, "ok")
	req.Header.Set("Origin", "https://shop.example")
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestCORSPreflight(t *testing.T) {
	r := newEngine(CORS([]string{"https://shop.example"}))
	r.OPTIONS("/x", func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := do(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)
}

func TestSecureHeaders(t *testing.T) {
	w := do(newEngine(SecureHeaders()), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/api/material/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	do(r, httptest.NewRequest(http.MethodGet, "/api/material/abc", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/api/material/def", nil))

	count, err := testutil.GatherAndCount(m.Registry(), "material_rental_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one series for both ids")
}

func TestNilCachePassesThrough(t *testing.T) {
	var ca *Cache
	assert.Nil(t, NewCache(nil, time.Minute, nil))

	r := newEngine(ca.Read(), ca.Invalidate())
	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.NoError(t, ca.Purge(context.Background()))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	a := cacheKey(httptest.NewRequest(http.MethodGet, "/api/material?x=1", nil))
	b := cacheKey(httptest.NewRequest(http.MethodGet, "/api/material?x=2", nil))
	c := cacheKey(httptest.NewRequest(http.MethodGet, "/api/material?x=1", nil))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Contains(t, a, cachePrefix+":")
}
