package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/blogs/{id}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/blogs/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/blogs/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestOperationCounters(t *testing.T) {
	before := testutil.ToFloat64(BlogOperationsTotal.WithLabelValues("create"))
	BlogOperation("create")
	assert.Equal(t, before+1, testutil.ToFloat64(BlogOperationsTotal.WithLabelValues("create")))

	okBefore := testutil.ToFloat64(UserOperationsTotal.WithLabelValues("login", "ok"))
	errBefore := testutil.ToFloat64(UserOperationsTotal.WithLabelValues("login", "error"))
	UserOperation("login", nil)
	UserOperation("login", errors.New("bad password"))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(UserOperationsTotal.WithLabelValues("login", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(UserOperationsTotal.WithLabelValues("login", "error")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	BlogOperation("list")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blog_operations_total")
}
