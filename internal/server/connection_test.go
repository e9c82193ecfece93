package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketScore(t *testing.T) {
	t.Parallel()
	_, ts := newTestServer(t, Options{})
	conn := dialWebSocket(t, ts)

	t.Run("score", func(t *testing.T) {
		reply := sendRequest(t, conn, MessageTypeScore, "r1", GameData{
			Frames: [][]int{{1, 4}, {4, 5}, {6, 1}, {5, 1}, {1, 1}, {0, 1}, {7, 2}, {6, 1}, {1, 1}, {5, 5, 1}},
		})
		require.Equal(t, MessageTypeScoreResult, reply.Type)
		assert.Equal(t, "r1", reply.RequestID)

		var result ScoreResultData
		require.NoError(t, json.Unmarshal(reply.Data, &result))
		assert.Equal(t, 59, result.Score)
	})

	t.Run("validate", func(t *testing.T) {
		reply := sendRequest(t, conn, MessageTypeValidate, "r2", GameData{Rolls: "10,10,10"})
		require.Equal(t, MessageTypeValidateResult, reply.Type)

		var result ValidateResultData
		require.NoError(t, json.Unmarshal(reply.Data, &result))
		assert.True(t, result.Valid)
		assert.Equal(t, 3, result.Frames)
	})

	t.Run("invalid game", func(t *testing.T) {
		reply := sendRequest(t, conn, MessageTypeScore, "r3", GameData{
			Frames: [][]int{{10}, {10}, {10}, {10}, {10}, {10}, {10}, {10}, {10}, {10}},
		})
		require.Equal(t, MessageTypeError, reply.Type)
		assert.Equal(t, "r3", reply.RequestID)

		var errData ErrorData
		require.NoError(t, json.Unmarshal(reply.Data, &errData))
		assert.Equal(t, CodeInvalidFrame, errData.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		reply := sendRequest(t, conn, MessageType("bowl"), "", GameData{Rolls: "1"})
		require.Equal(t, MessageTypeError, reply.Type)
		assert.NotEmpty(t, reply.RequestID)

		var errData ErrorData
		require.NoError(t, json.Unmarshal(reply.Data, &errData))
		assert.Equal(t, CodeBadRequest, errData.Code)
	})

	t.Run("unknown type without data", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"type": "bowl", "requestId": "r4"}))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		var reply Message
		require.NoError(t, conn.ReadJSON(&reply))
		require.Equal(t, MessageTypeError, reply.Type)
		assert.Equal(t, "r4", reply.RequestID)

		var errData ErrorData
		require.NoError(t, json.Unmarshal(reply.Data, &errData))
		assert.Equal(t, CodeBadRequest, errData.Code)
		assert.Contains(t, errData.Message, "unknown message type: bowl")
	})

	t.Run("score without data", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"type": "score"}))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		var reply Message
		require.NoError(t, conn.ReadJSON(&reply))
		require.Equal(t, MessageTypeError, reply.Type)

		var errData ErrorData
		require.NoError(t, json.Unmarshal(reply.Data, &errData))
		assert.Equal(t, "failed to parse game data", errData.Message)
	})
}

func TestWebSocketConnectionTracking(t *testing.T) {
	t.Parallel()
	srv, ts := newTestServer(t, Options{})
	conn := dialWebSocket(t, ts)

	// A round trip guarantees the connection is registered.
	sendRequest(t, conn, MessageTypeValidate, "", GameData{Rolls: "1,2"})
	assert.Equal(t, 1, srv.ConnectionCount())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return srv.ConnectionCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocketIdleTimeout(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clock := quartz.NewMock(t)
	srv, ts := newTestServer(t, Options{Clock: clock, IdleTimeout: 30 * time.Second})
	conn := dialWebSocket(t, ts)

	// The reply is written after the idle timer was armed and reset.
	sendRequest(t, conn, MessageTypeScore, "", GameData{Rolls: "1,2"})

	clock.Advance(30 * time.Second).MustWait(ctx)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)

	assert.Eventually(t, func() bool {
		return srv.ConnectionCount() == 0
	}, 5*time.Second, 10*time.Millisecond)
}
