package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func TestRouter_SetupRegistersVersionedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := NewDomainGroup("inventory", "/inventory")
	group.GET("/assets", okHandler).
		POST("/assets", okHandler)

	NewRouter(engine, WithAPIVersion("v1")).
		Register(group).
		Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/assets", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/inventory/assets", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_DefaultVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", okHandler)

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/system/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroup_Subgroups(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	group := NewDomainGroup("tracker", "/tracker")
	group.Group("projects", "/projects").GET("", okHandler)

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tracker/projects", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroup_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	var called bool
	group := NewDomainGroup("identity", "/identity")
	group.Use(func(c *gin.Context) {
		called = true
		c.Next()
	})
	group.GET("/profiles", okHandler)

	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/identity/profiles", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestDomainGroup_Accessors(t *testing.T) {
	group := NewDomainGroup("inventory", "/inventory")
	assert.Equal(t, "inventory", group.Name())
	assert.Equal(t, "/inventory", group.Prefix())
}
