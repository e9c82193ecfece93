package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer(Options{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestScoreEndpoint(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, Options{})

	t.Run("frames", func(t *testing.T) {
		resp := postJSON(t, ts, "/score", `{"frames": [[1,4],[4,5],[6,4],[5,5],[10],[0,1],[7,3],[6,4],[10],[2,8,6]]}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

		var result ScoreResultData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, 133, result.Score)
		require.Len(t, result.Frames, 10)
		assert.Equal(t, 117, result.Frames[8].Total)
	})

	t.Run("rolls", func(t *testing.T) {
		resp := postJSON(t, ts, "/score", `{"rolls": "10,10,10,10,10,10,10,10,10,10,10"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result ScoreResultData
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, 300, result.Score)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, ts.URL+"/score", strings.NewReader(`{"frames": [[1,2]]}`))
		require.NoError(t, err)
		req.Header.Set("X-Request-Id", "game-42")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "game-42", resp.Header.Get("X-Request-Id"))
	})
}

func TestScoreEndpointErrors(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, Options{})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"frames":`, http.StatusBadRequest, CodeBadRequest},
		{"no game", `{}`, http.StatusBadRequest, CodeBadRequest},
		{"non-sequence frame", `{"frames": [[1,4], "string"]}`, http.StatusUnprocessableEntity, CodeInvalidGame},
		{"too many rolls", `{"rolls": "1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1,1"}`, http.StatusUnprocessableEntity, CodeInvalidFrame},
		{"eleven frames", `{"frames": [[1],[1],[1],[1],[1],[1],[1],[1],[1],[1],[1]]}`, http.StatusUnprocessableEntity, CodeInvalidGame},
		{"too many pins", `{"frames": [[5,6]]}`, http.StatusUnprocessableEntity, CodeInvalidFrame},
		{"missing spare bonus", `{"frames": [[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[0,0],[5,5]]}`, http.StatusUnprocessableEntity, CodeSpareBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts, "/score", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var errData ErrorData
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errData))
			assert.Equal(t, tt.code, errData.Code)
			assert.NotEmpty(t, errData.Message)
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, Options{})

	resp := postJSON(t, ts, "/validate", `{"frames": [[10],[10],[10],[10],[10],[10],[10],[10],[10],[10,10]]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ValidateResultData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Valid)
	assert.Equal(t, 10, result.Frames)

	resp = postJSON(t, ts, "/validate", `{"frames": [[10,1]]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	t.Parallel()
	registry := prometheus.NewRegistry()
	srv, ts := newTestServer(t, Options{Registry: registry})

	postJSON(t, ts, "/score", `{"frames": [[1,4]]}`)
	postJSON(t, ts, "/score", `{"frames": [[1,4],[2,3]]}`)
	postJSON(t, ts, "/score", `{"frames": [[5,6]]}`)

	assert.Equal(t, 2.0, testutil.ToFloat64(srv.metrics.gamesScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.rejected.WithLabelValues(CodeInvalidFrame)))

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "tenpin_games_scored_total 2")
}

func TestRunShutsDownOnCancel(t *testing.T) {
	t.Parallel()
	srv := NewServer(Options{Addr: "127.0.0.1:0"}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunReportsListenError(t *testing.T) {
	t.Parallel()
	srv := NewServer(Options{Addr: "256.0.0.1:bad"}, testLogger())

	err := srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, CodeBadRequest, ErrorCode(errNoGame))
	assert.Equal(t, CodeBadRequest, ErrorCode(bytes.ErrTooLarge))
}
