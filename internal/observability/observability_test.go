package observability

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("GET", "/health", 200, 12*time.Millisecond)
	RecordGRPCClient("/cheqd.did.v2.Query/DidDoc", "OK")

	before := testutil.ToFloat64(resolverConnects.WithLabelValues("testnet", "false"))
	var obs ResolverObserver
	obs.ObserveConnect("testnet", errors.New("refused"))
	obs.ObserveRPC("testnet", "/cheqd.did.v2.Query/DidDoc", nil, 5*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(resolverConnects.WithLabelValues("testnet", "false")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(resolverRPCs.WithLabelValues("testnet", "/cheqd.did.v2.Query/DidDoc", "true")), 1.0)
}

func TestInitLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := initLogger(&buf, "didcheqd", "warn")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = initLogger(&buf, "didcheqd", "loud")
	assert.Error(t, err)
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger, err := initLogger(&buf, "test", "debug")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequestLogger(logger), RequestMetricsMiddleware())
	r.GET("/1.0/identifiers/*did", func(c *gin.Context) {
		c.Set(ErrorCodeKey, "notFound")
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/1.0/identifiers/did:cheqd:testnet:abc", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.GreaterOrEqual(t, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/1.0/identifiers/*did", "404")), 1.0)
	assert.Contains(t, buf.String(), "http_request")
	assert.Contains(t, buf.String(), "did:cheqd:testnet:abc")
	assert.Contains(t, buf.String(), "notFound")
	assert.Contains(t, buf.String(), "WRN")
}
