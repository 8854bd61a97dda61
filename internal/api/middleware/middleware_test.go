package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aurasynth/midi-api/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	endpoint string
	status   int
}

type fakeRecorder struct {
	requests []recordedRequest
}

func (f *fakeRecorder) RecordAPIRequest(_ context.Context, endpoint string, statusCode int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{endpoint: endpoint, status: statusCode})
}

func (f *fakeRecorder) RecordGeneration(context.Context, string, time.Duration, bool) {}

func setupEngine(buf *bytes.Buffer, rec *fakeRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New(buf, "test")

	engine := gin.New()
	engine.Use(RequestTracking(log, rec))
	engine.Use(RecoverWithSentry(log))
	engine.Use(SentryMiddleware())
	engine.Use(CORS([]string{"http://localhost:5173"}))
	engine.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})
	engine.GET("/boom", func(c *gin.Context) {
		panic("sample file handle exploded")
	})
	return engine
}

func TestRequestTrackingSetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	engine := setupEngine(&buf, rec)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get("X-Request-ID")
	assert.Len(t, requestID, 36)
	assert.Contains(t, w.Body.String(), requestID)
	assert.Contains(t, buf.String(), "[INFO] Request completed")
	assert.Equal(t, []recordedRequest{{endpoint: "/ok", status: http.StatusOK}}, rec.requests)
}

func TestRecoverWithSentryReturnsJSON(t *testing.T) {
	var buf bytes.Buffer
	rec := &fakeRecorder{}
	engine := setupEngine(&buf, rec)

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t,
		`{"error":"sample file handle exploded","request_id":"`+w.Header().Get("X-Request-ID")+`"}`,
		w.Body.String())
	assert.Contains(t, buf.String(), "[ERROR] Panic recovered")
	assert.Contains(t, buf.String(), "[ERROR] Request failed with server error")

	// the engine keeps serving after a panic
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	var buf bytes.Buffer
	engine := setupEngine(&buf, &fakeRecorder{})

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSAllowAllWhenUnconfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS(nil))
	engine.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://anywhere.example")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
