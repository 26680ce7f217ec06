package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(okHandler(), mk("A"), mk("B"), mk("C"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"A", "B", "C"}, order)
}

func TestWithRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	h := WithRequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set("X-Request-ID", "client-rid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "client-rid", seen)
}

func TestWithCORS_AnyOrigin(t *testing.T) {
	h := WithCORS([]string{"*"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	pre := httptest.NewRequest(http.MethodOptions, "/verify", nil)
	pre.Header.Set("Origin", "https://other.example.org")
	pre.Header.Set("Access-Control-Request-Method", "GET")
	pre.Header.Set("Access-Control-Request-Headers", "authorization")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, pre)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://other.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestWithCORS_RestrictedList(t *testing.T) {
	h := WithCORS([]string{"https://good.example/"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://good.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://good.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestWithRecover_Returns500JSON(t *testing.T) {
	h := WithRecover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verify", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Internal server error", body)
}

func TestWithLogging_LevelBySubjectAndStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(nil) })

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		SetSubject(r.Context(), "user_01")
		w.WriteHeader(http.StatusUnauthorized)
	}), WithRequestID(), WithLogging())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/verify", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	require.Equal(t, "user_01", fields["sub"])
	require.EqualValues(t, http.StatusUnauthorized, fields["status"])
	require.NotEmpty(t, fields["request_id"])
}

func TestWithSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	WithSecurityHeaders()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}
