package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/bisim"
	"github.com/aretw0/bisim/pkg/adapters/memory"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/dsl"
	"github.com/aretw0/bisim/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	loader, err := memory.NewFromSystems(map[string]*domain.TransitionSystem{dsl.DemoName: dsl.Demo()})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	eng, err := bisim.New("",
		bisim.WithLoader(loader),
		bisim.WithStore(memory.NewStore()),
		bisim.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)

	return NewHandler(eng, WithGatherer(reg))
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body)).WithContext(context.Background())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRefine_Document(t *testing.T) {
	h := newTestHandler(t)
	body := []byte(`{"name":"silent","transitions":[
		{"from":"A","to":"A'","action":"tau"},
		{"from":"A'","to":"A''","action":"x"},
		{"from":"B","to":"B'","action":"x"}],
		"states":["A''","B'"]}`)

	w := do(t, h, "POST", "/refine", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "silent", result.Graph)
	assert.Equal(t, [][]domain.State{{"A", "A'", "B"}, {"A''", "B'"}}, result.Classes())
}

func TestRefine_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"transitions":`, http.StatusBadRequest},
		{"unknown field", `{"edges":[]}`, http.StatusBadRequest},
		{"transition without target", `{"transitions":[{"from":"a","action":"x"}]}`, http.StatusBadRequest},
		{"non-integer block", `{"transitions":[{"from":"a","to":"b"}],"initial":{"a":"one"}}`, http.StatusBadRequest},
		{"initial names unknown state", `{"transitions":[{"from":"a","to":"b","action":"x"}],"initial":{"z":1}}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, "POST", "/refine", []byte(tt.body))
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestGraphs(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/graphs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"graphs":["demo"]}`, w.Body.String())

	w = do(t, h, "GET", "/graphs/demo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"from":"00"`)

	w = do(t, h, "GET", "/graphs/demo?format=mermaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(t, h, "GET", "/graphs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefineGraph_ThenFetchResult(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/graphs/demo/refine", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.NotEmpty(t, result.ID)
	assert.Equal(t, 3, result.Rounds)

	w = do(t, h, "GET", "/results/"+result.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, result.Partition, fetched.Partition)

	w = do(t, h, "GET", "/results/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(t)

	do(t, h, "POST", "/graphs/demo/refine", nil)

	w := do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bisim_refinements_total 1")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "OPTIONS", "/refine", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRefine_RejectsNonJSONBody(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/refine", strings.NewReader("transitions: []"))
	req.Header.Set("Content-Type", "text/yaml")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestGetGraph_RejectsUnknownFormat(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/graphs/demo?format=dot", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = do(t, h, "GET", "/graphs/demo?format=json", nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
	for _, path := range []string{"/refine:", "/graphs:", "/graphs/{name}:", "/graphs/{name}/refine:", "/results/{id}:", "/metrics:"} {
		assert.Contains(t, w.Body.String(), path)
	}

	w = do(t, h, "GET", "/swagger", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "url: '/openapi.yaml'")
}

func TestRefine_StoredResultKeepsGraphName(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, "POST", "/refine", []byte(`{"name":"inline","transitions":[{"from":"a","to":"b","action":"x"}]}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	w = do(t, h, "GET", "/results/"+result.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched domain.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, "inline", fetched.Graph)
}
