package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tim4270/ProceduralGenerationTools/pkg/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(log.New(io.Discard), config.Default()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealthz(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestDungeonText(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/dungeon?seed=7&width=30&height=20")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "7", resp.Header.Get("X-Seed"))
	assert.Len(t, resp.Header.Get("X-Run-Id"), 8)

	rows := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	require.Len(t, rows, 20)
	for _, row := range rows {
		assert.Len(t, row, 30)
	}
	assert.Contains(t, body, ".")

	_, again := get(t, srv, "/dungeon?seed=7&width=30&height=20")
	assert.Equal(t, body, again, "same seed should give the same map")
}

func TestDungeonJSON(t *testing.T) {
	resp, body := get(t, newTestServer(t), "/dungeon?seed=11&width=50&height=40&strategy=sibling-pairs&format=json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got dungeonResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, int64(11), got.Seed)
	assert.Equal(t, 50, got.Width)
	assert.Equal(t, 40, got.Height)
	assert.Equal(t, "sibling-pairs", got.Strategy)
	assert.Len(t, got.Rows, 40)
	assert.Len(t, got.Rooms, got.RoomsPlaced)
	assert.Positive(t, got.RoomsPlaced)
	assert.Equal(t, got.RoomsPlaced-1, got.Corridors)
	assert.Len(t, got.RunID, 8)
}

func TestDungeonDefaultsFromConfig(t *testing.T) {
	_, body := get(t, newTestServer(t), "/dungeon?seed=3")
	def := config.Default()
	rows := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	assert.Len(t, rows, def.Grid.Height)
	assert.Len(t, rows[0], def.Grid.Width)
}

func TestDungeonBadRequests(t *testing.T) {
	srv := newTestServer(t)
	for _, query := range []string{
		"seed=abc",
		"width=abc",
		"height=1.5",
		"width=0",
		"width=500",
		"height=201",
		"strategy=spiral",
		"format=xml",
	} {
		t.Run(query, func(t *testing.T) {
			resp, _ := get(t, srv, "/dungeon?"+query)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	resp, _ := get(t, newTestServer(t), "/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// brokenWriter accepts headers but fails every body write
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDungeonWriteErrorsAreLogged(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			var logs bytes.Buffer
			router := newRouter(newLogger(&logs, log.InfoLevel), config.Default())

			req := httptest.NewRequest(http.MethodGet, "/dungeon?seed=4&width=20&height=20&format="+format, nil)
			router.ServeHTTP(brokenWriter{httptest.NewRecorder()}, req)

			assert.Contains(t, logs.String(), "failed to write response")
			assert.Contains(t, logs.String(), "connection reset")
		})
	}
}
