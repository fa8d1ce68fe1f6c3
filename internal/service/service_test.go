package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/conduit-lang/jsscan/internal/cache"
	"github.com/conduit-lang/jsscan/internal/wsbus"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(Options{Cache: cache.NewMemoryCache()})
}

func postTokenize(t *testing.T, svc *Service, source string) (*httptest.ResponseRecorder, TokenizeResponse) {
	t.Helper()
	body, err := json.Marshal(TokenizeRequest{Source: source})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/tokenize", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	svc.ServeHTTP(rr, req)

	var resp TokenizeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestHandleTokenizeSuccess(t *testing.T) {
	svc := newTestService(t)
	rr, resp := postTokenize(t, svc, "let x = 1;")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, resp.Tokens)
	assert.Nil(t, resp.Error)
	assert.False(t, resp.Cached)
}

func TestHandleTokenizeCachesSecondRequest(t *testing.T) {
	svc := newTestService(t)
	_, first := postTokenize(t, svc, "const y = 2;")
	assert.False(t, first.Cached)

	_, second := postTokenize(t, svc, "const y = 2;")
	assert.True(t, second.Cached)
	assert.Equal(t, len(first.Tokens), len(second.Tokens))
}

func TestHandleTokenizeScannerError(t *testing.T) {
	svc := newTestService(t)
	rr, resp := postTokenize(t, svc, `"unterminated`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "scanner", resp.Error.Phase)
}

func TestHandleHealth(t *testing.T) {
	svc := newTestService(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	svc.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	auth := NewAuthService("secret", time.Minute)
	svc := New(Options{Cache: cache.NewMemoryCache(), Auth: auth})
	rr, _ := postTokenize(t, svc, "1")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestIssueAndValidateToken(t *testing.T) {
	auth := NewAuthService("secret", time.Minute)
	token, err := auth.IssueToken("client-1")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "client-1", claims["client_id"])
}

func TestHashAndCheckAPIKey(t *testing.T) {
	hash, err := HashAPIKey("my-api-key")
	require.NoError(t, err)
	assert.True(t, CheckAPIKey("my-api-key", hash))
	assert.False(t, CheckAPIKey("wrong-key", hash))
}

func TestHandleStreamTokenizesEachInboundMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := wsbus.NewHub(ctx, zap.NewNop())
	go hub.Run()

	svc := New(Options{Cache: cache.NewMemoryCache(), Hub: hub, Logger: zap.NewNop()})
	srv := httptest.NewServer(svc)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("let x = 1;")))

	var kinds []string
	for {
		_, body, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg streamToken
		require.NoError(t, json.Unmarshal(body, &msg))
		if msg.Type == "done" {
			break
		}
		require.Equal(t, "token", msg.Type)
		kinds = append(kinds, msg.Kind)
	}

	assert.NotEmpty(t, kinds)
}
