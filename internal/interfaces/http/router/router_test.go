package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup_MountsGroupsUnderVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	vendors := NewDomainGroup("vendors", "/vendors")
	vendors.GET("", func(c *gin.Context) { c.String(http.StatusOK, "vendors") })
	items := NewDomainGroup("items", "/items")
	items.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })

	r.Register(vendors).Register(items).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/vendors")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vendors", w.Body.String())

	w = serve(engine, http.MethodGet, "/api/v1/items/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/vendors").Code)
}

func TestRouterUse_AppliesToVersionedRoutesOnly(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-Api", "yes")
		c.Next()
	})
	g := NewDomainGroup("mrns", "/mrns")
	g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.Register(g).Setup()

	assert.Equal(t, "yes", serve(engine, http.MethodGet, "/api/v1/mrns").Header().Get("X-Api"))
	assert.Empty(t, serve(engine, http.MethodGet, "/health").Header().Get("X-Api"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("stock-rules", "/stock-rules")
		assert.Equal(t, "stock-rules", g.Name())
		assert.Equal(t, "/stock-rules", g.Prefix())
	})

	t.Run("all methods", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }
		g := NewDomainGroup("po", "/po")
		g.GET("/:id", ok).
			POST("", ok).
			PUT("/:id", ok).
			PATCH("/:id", ok).
			DELETE("/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/v1/po/1"},
			{http.MethodPost, "/api/v1/po"},
			{http.MethodPut, "/api/v1/po/1"},
			{http.MethodPatch, "/api/v1/po/1"},
			{http.MethodDelete, "/api/v1/po/1"},
		} {
			assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.path).Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("group middleware and per-route handlers", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("cleanup", "/cleanup")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group", "cleanup")
			c.Next()
		})
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		g.GET("/status", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.POST("/run", deny, func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/cleanup/status")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cleanup", w.Header().Get("X-Group"))
		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodPost, "/api/v1/cleanup/run").Code)
	})

	t.Run("subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("inventory", "/inventory")
		g.Group("summary", "/summary").GET("", func(c *gin.Context) { c.String(http.StatusOK, "summary") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/inventory/summary")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "summary", w.Body.String())
	})
}
