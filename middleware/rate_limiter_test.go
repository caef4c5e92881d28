package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"frontdesk/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func postAs(r *gin.Engine, from string) int {
	form := url.Values{"From": {from}}
	req := httptest.NewRequest(http.MethodPost, "/voice", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitPerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxRequestsPerMin = 3

	r := gin.New()
	r.Use(RateLimitMiddleware())
	r.POST("/voice", func(c *gin.Context) { c.Status(http.StatusOK) })

	// The burst admits exactly the configured quota.
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, postAs(r, "+15557770001"))
	}
	assert.Equal(t, http.StatusTooManyRequests, postAs(r, "+15557770001"))

	// A different caller has its own quota.
	assert.Equal(t, http.StatusOK, postAs(r, "+15557770002"))
}
