package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drakos74/mlviz/internal/demo"
	"github.com/drakos74/mlviz/internal/render"
	"github.com/drakos74/mlviz/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*demo.Loop, http.Handler) {
	loop, err := demo.NewLoop(demo.NewExplorer(rng.New(1)), demo.NewMLvsDL(rng.New(1)))
	require.NoError(t, err)
	return loop, New("test", 0, loop, false).Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestServer_Live(t *testing.T) {
	_, h := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/data", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodPost, "/data", "").Code)
}

func TestServer_Demos(t *testing.T) {
	loop, h := newTestServer(t)
	rec := do(h, http.MethodGet, "/api/demos", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []demo.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, loop.Demos()[0].ID, infos[0].ID)
	assert.Equal(t, demo.ExplorerName, infos[0].Name)
	assert.Equal(t, demo.MLvsDLName, infos[1].Name)
	assert.NotEmpty(t, infos[1].Sliders)
}

func TestServer_Frame(t *testing.T) {

	type test struct {
		target string
		code   int
	}

	tests := map[string]test{
		"frame":   {target: "/data/frame?demo=mlvsdl", code: http.StatusOK},
		"missing": {target: "/data/frame", code: http.StatusBadRequest},
		"unknown": {target: "/data/frame?demo=tsne", code: http.StatusNotFound},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			loop, h := newTestServer(t)
			loop.Tick(time.Second / 60)
			rec := do(h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				return
			}
			var f render.Frame
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
			assert.Equal(t, demo.MLvsDLName, f.Demo)
			assert.Equal(t, uint64(1), f.Tick)
			assert.NotEmpty(t, f.Primitives)
			assert.Equal(t, "10000", f.Labels["size"])
		})
	}
}

func TestServer_Control(t *testing.T) {

	type test struct {
		body string
		code int
	}

	tests := map[string]test{
		"slider":         {body: `{"demo":"mlvsdl","control":"datasetSize","value":1000}`, code: http.StatusAccepted},
		"action":         {body: `{"demo":"explorer","action":"train"}`, code: http.StatusAccepted},
		"unknown-demo":   {body: `{"demo":"tsne","action":"reset"}`, code: http.StatusNotFound},
		"unknown-slider": {body: `{"demo":"mlvsdl","control":"depth","value":3}`, code: http.StatusBadRequest},
		"unknown-action": {body: `{"demo":"mlvsdl","action":"train"}`, code: http.StatusBadRequest},
		"invalid-json":   {body: `{"demo":`, code: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, h := newTestServer(t)
			rec := do(h, http.MethodPost, "/api/control", tt.body)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_ControlAppliedOnTick(t *testing.T) {
	loop, h := newTestServer(t)
	rec := do(h, http.MethodPost, "/api/control", `{"demo":"mlvsdl","control":"datasetSize","value":1000}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	loop.Tick(time.Second / 60)
	rec = do(h, http.MethodGet, "/data/frame?demo=mlvsdl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var f render.Frame
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, "1000", f.Labels["size"])
}

func TestServer_Metrics(t *testing.T) {
	loop, h := newTestServer(t)
	loop.Tick(time.Second / 60)
	rec := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mlviz_ticks{demo="mlvsdl"}`)
}

func TestServer_Debug(t *testing.T) {
	loop, err := demo.NewLoop(demo.NewMLvsDL(rng.New(1)))
	require.NoError(t, err)
	h := New("debug", 0, loop, true).Handler()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/data", "").Code)
	}
	assert.Equal(t, http.StatusAccepted, do(h, http.MethodPost, "/api/control", `{"demo":"mlvsdl","action":"reset"}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics", "").Code)
}
