package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/v1/jobs/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/jobs/:id", "204"))
	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/jobs/"+id, nil))
	}

	after := testutil.ToFloat64(requestTotal.WithLabelValues(http.MethodGet, "/v1/jobs/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestObserveReap(t *testing.T) {
	Register()
	okBefore := testutil.ToFloat64(reaperRuns.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(reaperRuns.WithLabelValues("error"))
	deactivatedBefore := testutil.ToFloat64(reaperDeactivated)

	ObserveReap(3, nil)
	ObserveReap(0, errors.New("db down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(reaperRuns.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(reaperRuns.WithLabelValues("error")))
	assert.Equal(t, deactivatedBefore+3, testutil.ToFloat64(reaperDeactivated))
}
