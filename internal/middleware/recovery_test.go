package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecoveryMiddlewareLogsPanic(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)

	router := gin.New()
	router.Use(RecoveryMiddleware(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("kaboom")
	})

	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)

	entries := logs.FilterMessage("panic recovered").All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "kaboom", entries[0].ContextMap()["panic"])
	assert.Equal(t, "/boom", entries[0].ContextMap()["path"])
}

func TestTimeoutMiddlewareAbortsSlowRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.WarnLevel)

	router := gin.New()
	router.Use(TimeoutMiddleware(zap.New(core), 10*time.Millisecond))
	router.GET("/slow", func(c *gin.Context) {
		time.Sleep(200 * time.Millisecond)
	})

	req, _ := http.NewRequest(http.MethodGet, "/slow", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusGatewayTimeout, resp.Code)
	assert.Len(t, logs.FilterMessage("request timed out").All(), 1)
}
