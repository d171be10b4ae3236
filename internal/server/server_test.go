package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-syqgen/internal/server"
	"github.com/goliatone/go-syqgen/pkg/examples"
	"github.com/goliatone/go-syqgen/pkg/orchestrator"
	"github.com/goliatone/go-syqgen/pkg/render"
)

const document = `<!DOCTYPE html><html><head><title>T</title></head><body><h1>Hi</h1></body></html>`

func newTestServer(t *testing.T, options ...server.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.New(orchestrator.New(), options...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postConvert(t *testing.T, url string, req server.ConvertRequest) (int, server.ConvertResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	resp, err := http.Post(url+"/convert", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out server.ConvertResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestConvertEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, out := postConvert(t, srv.URL, server.ConvertRequest{Input: document})
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, out.Error)
	assert.Contains(t, out.Code, `body(h1("Hi"))`)
	assert.True(t, strings.HasPrefix(out.Preview, "<!DOCTYPE html>\n"))
}

func TestConvertEndpoint_Failure(t *testing.T) {
	srv := newTestServer(t)

	status, out := postConvert(t, srv.URL, server.ConvertRequest{Input: "<html><body>x</body></html>"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "missing document-type declaration", out.Error)
	assert.Contains(t, out.Hint, "<!DOCTYPE html>")
	assert.Contains(t, out.Code, "# Conversion failed: missing document-type declaration")
}

func TestConvertEndpoint_ExampleAndOptions(t *testing.T) {
	srv := newTestServer(t, server.WithRenderOptions(render.RenderOptions{Mode: render.EmbedHoist}))

	status, out := postConvert(t, srv.URL, server.ConvertRequest{Example: "advanced"})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, out.Code, "internal_css_1 = \"\"\"")
	assert.Contains(t, out.Code, "script(internal_js_1)")

	status, out = postConvert(t, srv.URL, server.ConvertRequest{Example: "nope"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, out.Error)
}

func TestConvertEndpoint_BadBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/convert", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExamplesEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/examples")
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []examples.Example
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Equal(t, "simple", list[0].Name)
}

func TestWebSocket_LiveConversion(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(context.Background(), wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var initial server.ConvertResponse
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Empty(t, initial.Code)
	assert.Contains(t, initial.Preview, "Live preview will appear here.")

	require.NoError(t, conn.WriteJSON(server.ConvertRequest{Input: document}))
	var first server.ConvertResponse
	require.NoError(t, conn.ReadJSON(&first))
	assert.Contains(t, first.Code, `h1("Hi")`)
	assert.Empty(t, first.Error)

	require.NoError(t, conn.WriteJSON(server.ConvertRequest{Input: "<!DOCTYPE html><div><span></div>"}))
	var second server.ConvertResponse
	require.NoError(t, conn.ReadJSON(&second))
	assert.Contains(t, second.Error, "structural parse error")
	assert.NotContains(t, second.Code, "div(")

	require.NoError(t, conn.WriteJSON(server.ConvertRequest{Input: "   "}))
	var blank server.ConvertResponse
	require.NoError(t, conn.ReadJSON(&blank))
	assert.Empty(t, blank.Code)
	assert.Contains(t, blank.Preview, "Live preview will appear here.")
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.New(orchestrator.New()).ListenAndServe(ctx, "127.0.0.1:0")
	}()
	cancel()
	assert.NoError(t, <-done)
}
