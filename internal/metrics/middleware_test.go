package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	Init()
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/v1/occupations/{code}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/v1/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	okCounter := httpRequestsTotal.WithLabelValues("GET", "/v1/occupations/{code}", "200")
	notFoundCounter := httpRequestsTotal.WithLabelValues("GET", "/v1/missing", "404")
	unknownCounter := httpRequestsTotal.WithLabelValues("GET", "unknown", "404")
	okBefore := testutil.ToFloat64(okCounter)
	notFoundBefore := testutil.ToFloat64(notFoundCounter)
	unknownBefore := testutil.ToFloat64(unknownCounter)

	ts := httptest.NewServer(r)
	defer ts.Close()

	for _, path := range []string{"/v1/occupations/15-1252", "/v1/occupations/29-1141", "/v1/missing", "/nowhere"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
	}

	assert.InDelta(t, okBefore+2, testutil.ToFloat64(okCounter), 0)
	assert.InDelta(t, notFoundBefore+1, testutil.ToFloat64(notFoundCounter), 0)
	assert.InDelta(t, unknownBefore+1, testutil.ToFloat64(unknownCounter), 0)
	assert.Positive(t, testutil.CollectAndCount(httpRequestDurationSeconds))
}
