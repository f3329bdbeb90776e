package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/cardmenu/internal/menu"
	"github.com/aretw0/cardmenu/pkg/runtime"
	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/aretw0/cardmenu/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	m, err := runtime.New(menu.Default())
	require.NoError(t, err)

	n := 0
	mgr := session.NewManager(m, session.WithIDGenerator(func() string {
		n++
		return "s" + strings.Repeat("1", n)
	}))
	s := NewServer(mgr, opts...)
	return s, s.Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var resp SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestServer_SessionFlow(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, "POST", "/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "s1", created.ID)
	assert.Equal(t, menu.RootMenu, created.Mode)
	assert.Equal(t, []string{"down", "up"}, created.Actions)
	assert.Equal(t, []string{"choose", "play", "rules"}, created.Transitions)

	w = do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"play"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, menu.Playing, decode(t, w).Mode)

	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"draw"}`)
	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"draw"}`)
	w = do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"discard","payload":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, "GET", "/sessions/s1", "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode(t, w)
	assert.Equal(t, map[string]any{
		"hand": []any{map[string]any{"suit": "SPADES", "value": "KING"}},
		"next": float64(2),
	}, got.Data)

	w = do(t, h, "GET", "/sessions", "")
	assert.JSONEq(t, `{"sessions":["s1"]}`, w.Body.String())

	w = do(t, h, "DELETE", "/sessions/s1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, "GET", "/sessions/s1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_DispatchErrors(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/sessions", "")

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unhandled action", "/sessions/s1/dispatch", `{"type":"draw"}`, http.StatusConflict},
		{"missing type", "/sessions/s1/dispatch", `{}`, http.StatusBadRequest},
		{"malformed body", "/sessions/s1/dispatch", `{`, http.StatusBadRequest},
		{"multi-word type", "/sessions/s1/dispatch", `{"type":"draw two"}`, http.StatusBadRequest},
		{"missing session", "/sessions/nope/dispatch", `{"type":"up"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	// Handler errors: invalid payload and an empty hand.
	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"play"}`)
	w := do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"discard"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"draw","payload":"x"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"discard","payload":"second"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Page(t *testing.T) {
	_, h := newTestServer(t, WithCopy(menu.DefaultCopy()))
	do(t, h, "POST", "/sessions", "")

	w := do(t, h, "GET", "/sessions/s1/page", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<main class="page page--root-menu">`)
	assert.Contains(t, body, `<li class="item item--selected">Play</li>`)
	assert.Contains(t, body, `<li class="item">Rules</li>`)
	assert.Contains(t, body, `<button class="btn btn--action" data-type="down">down</button>`)
	assert.Contains(t, body, `<button class="btn btn--transition" data-type="choose">choose</button>`)

	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"play"}`)
	w = do(t, h, "GET", "/sessions/s1/page", "")
	assert.Contains(t, w.Body.String(), `<div class="hand hand--empty">`)

	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"draw"}`)
	w = do(t, h, "GET", "/sessions/s1/page", "")
	assert.Contains(t, w.Body.String(), `<img class="card" width="80" alt="The ace of spades" src="svgs/cards/sa.svg">`)

	w = do(t, h, "GET", "/sessions/nope/page", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_PageWithoutCopy(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/sessions", "")

	w := do(t, h, "GET", "/sessions/s1/page", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<pre class="data">`)
	assert.Contains(t, w.Body.String(), "&#34;cursor&#34;: 0")
}

func TestServer_Graph(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, "POST", "/sessions", "")
	do(t, h, "POST", "/sessions/s1/dispatch", `{"type":"rules"}`)

	w := do(t, h, "GET", "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))
	assert.NotContains(t, w.Body.String(), "class RULES current;")

	w = do(t, h, "GET", "/graph?session=s1", "")
	assert.Contains(t, w.Body.String(), "class RULES current;")

	w = do(t, h, "GET", "/graph?session=nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Modes(t *testing.T) {
	_, h := newTestServer(t)

	w := do(t, h, "GET", "/modes", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Custom schema types are written by name only, so read schemas as strings.
	var modes []struct {
		Mode        domain.Mode
		Initial     bool
		Actions     []string
		Transitions map[string][]domain.Mode
		Schema      map[string]string
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modes))
	require.Len(t, modes, 3)
	assert.Equal(t, menu.Playing, modes[0].Mode)
	assert.Equal(t, []string{"discard", "draw"}, modes[0].Actions)
	assert.Equal(t, []domain.Mode{menu.RootMenu}, modes[0].Transitions["quit"])
	assert.Equal(t, "[object]", modes[0].Schema["hand"])
	assert.Equal(t, "cursor", modes[1].Schema["cursor"])
	assert.True(t, modes[1].Initial)
	assert.ElementsMatch(t, []domain.Mode{menu.Playing, menu.Rules}, modes[1].Transitions["choose"])
}

func TestServer_HealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("metrics"))
	})
	_, h := newTestServer(t, WithMetrics(metrics))

	w := do(t, h, "GET", "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/metrics", "")
	assert.Equal(t, "metrics", w.Body.String())
}

func TestServer_SubscribeEvents(t *testing.T) {
	s, h := newTestServer(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/sessions", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/sessions/s1/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()

	reader := bufio.NewReader(stream.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	// The stream is registered once the ping is flushed.
	require.Eventually(t, func() bool {
		s.Streams.mu.RLock()
		defer s.Streams.mu.RUnlock()
		return len(s.Streams.subscribers["s1"]) == 1
	}, time.Second, 10*time.Millisecond)

	post, err := http.Post(srv.URL+"/sessions/s1/dispatch", "application/json", bytes.NewBufferString(`{"type":"down"}`))
	require.NoError(t, err)
	post.Body.Close()

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}
	assert.Contains(t, line, `"cursor":1`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, StatusFor(menu.ErrDeckEmpty))
}
