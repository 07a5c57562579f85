package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/qwalk/internal/chart"
	"github.com/san-kum/qwalk/internal/walk"
)

func newTestServer() *Server {
	return New(Config{
		Log:      zerolog.Nop(),
		Defaults: walk.DefaultParams(),
	})
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string   `json:"status"`
		Walks  []string `json:"walks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, []string{"quantum", "random"}, body.Walks)
}

func TestWalkFigure(t *testing.T) {
	rec := get(t, newTestServer(), "/api/walk?type=Quantum&qubits=4&steps=3&repetitions=2000&coin=1&seed=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var fig chart.Figure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "lines", fig.Data[0].Type)
	assert.Equal(t, "Result for a Quantum Walk", fig.Layout.Title.Text)
	assert.Equal(t, len(fig.Data[0].X), len(fig.Data[0].Y))
	assert.NotEmpty(t, fig.Data[0].X)

	sum := 0.0
	for _, y := range fig.Data[0].Y {
		sum += y
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestWalkFigureDeterministic(t *testing.T) {
	s := newTestServer()
	target := "/api/walk?type=random&steps=10&repetitions=500&seed=42"
	a := get(t, s, target)
	b := get(t, s, target)
	require.Equal(t, http.StatusOK, a.Code)
	assert.Equal(t, a.Body.String(), b.Body.String())

	var fig chart.Figure
	require.NoError(t, json.Unmarshal(a.Body.Bytes(), &fig))
	assert.Equal(t, "Result for a Random Walk", fig.Layout.Title.Text)
	require.Len(t, fig.Data[0].X, 21)
	assert.Equal(t, -10, fig.Data[0].X[0])
	assert.Equal(t, 10, fig.Data[0].X[20])
}

func TestWalkUnknownTypeReturnsEmptyFigure(t *testing.T) {
	rec := get(t, newTestServer(), "/api/walk?type=classical")
	require.Equal(t, http.StatusOK, rec.Code)

	var fig chart.Figure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fig))
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].X)
	assert.Empty(t, fig.Data[0].Y)
}

func TestWalkBadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"non-numeric qubits", "type=quantum&qubits=seven"},
		{"qubits out of range", "type=quantum&qubits=11"},
		{"steps out of range", "type=quantum&steps=0"},
		{"bad coin", "type=quantum&coin=heads"},
		{"bad seed", "type=random&seed=-1"},
		{"bias out of range", "type=random&bias=1.5"},
		{"bad repetitions", "type=random&repetitions=many"},
		{"random steps too large", "type=random&steps=1099511627776&repetitions=1"},
		{"random steps above range", "type=random&steps=101"},
		{"bias not a number", "type=random&bias=NaN"},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, "/api/walk?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestWalkSVG(t *testing.T) {
	rec := get(t, newTestServer(), "/api/walk.svg?type=random&steps=5&repetitions=500&seed=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Contains(t, body, "Result for a Random Walk")
	assert.Contains(t, body, "<path")
}

func TestPresets(t *testing.T) {
	s := newTestServer()

	rec := get(t, s, "/api/presets")
	require.Equal(t, http.StatusOK, rec.Code)
	var all map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Contains(t, all["quantum"], "symmetric")
	assert.Contains(t, all["random"], "biased")

	rec = get(t, s, "/api/presets/random")
	require.Equal(t, http.StatusOK, rec.Code)
	var names []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	assert.Equal(t, []string{"biased", "default", "long"}, names)

	rec = get(t, s, "/api/presets/classical")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/walk", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
