package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/middleware"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("body"))
	})
}

func TestLoggingLevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusSeeOther, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logger, logs := testutil.BufferLogger()
			handler := middleware.Logging(logger)(statusHandler(tt.status))

			req := httptest.NewRequest(http.MethodGet, "/game/game-1", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			records := logs.Records()
			require.Len(t, records, 1)
			record := records[0]
			assert.Equal(t, tt.level, record["level"])
			assert.Equal(t, "http request", record["msg"])
			assert.Equal(t, "http", record["component"])
			assert.Equal(t, "/game/game-1", record["path"])
			assert.EqualValues(t, tt.status, record["status"])
			assert.EqualValues(t, 4, record["size"])
		})
	}
}

func TestLoggingKeepsFlusher(t *testing.T) {
	logger, _ := testutil.BufferLogger()
	var flushed bool
	handler := middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		flusher.Flush()
		flushed = true
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/game/game-1/events", nil))

	assert.True(t, flushed)
	assert.True(t, rr.Flushed)
}

func TestRecoveryHandsPanicToHandler(t *testing.T) {
	logger, logs := testutil.BufferLogger()

	var recovered any
	onPanic := func(w http.ResponseWriter, _ *http.Request, err any) {
		recovered = err
		w.WriteHeader(http.StatusTeapot)
	}
	handler := middleware.Recovery(logger, onPanic)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/game/game-1/cell", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "boom", recovered)

	records := logs.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "ERROR", records[0]["level"])
	assert.Equal(t, "panic recovered", records[0]["msg"])
	assert.Equal(t, "/game/game-1/cell", records[0]["path"])
	assert.NotEmpty(t, records[0]["stack"])
}
