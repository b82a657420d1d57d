package app

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cvadnais/qr-tracker/internal/config"
	"github.com/cvadnais/qr-tracker/internal/db"
	"github.com/cvadnais/qr-tracker/internal/dtos"
	"github.com/cvadnais/qr-tracker/internal/lib/logger/handlers/slogdiscard"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Env:        "local",
		BaseURL:    "https://dx1.dev",
		CodeLength: 6,
		QR:         config.QR{Size: 256, OverlaySize: 60},
	}

	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	router, err := New(cfg, gdb, slogdiscard.NewDiscardLogger()).Router()
	require.NoError(t, err)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts
}

func shorten(t *testing.T, ts *httptest.Server, url string) dtos.ShortenResponse {
	t.Helper()

	body := strings.NewReader(`{"url": "` + url + `"}`)
	resp, err := http.Post(ts.URL+"/api/shorten", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dtos.ShortenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Backend is alive", string(body))
}

func TestShorten(t *testing.T) {
	ts := newTestServer(t)

	out := shorten(t, ts, "https://example.com")
	assert.Regexp(t, `^[a-z0-9]{6}$`, out.Code)
	assert.Equal(t, "https://dx1.dev/r/"+out.Code, out.ShortURL)
	assert.True(t, strings.HasPrefix(out.QRBase64, "data:image/png;base64,"))
}

func TestShorten_RawPNG(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/shorten",
		strings.NewReader(`{"url": "https://example.com"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestShorten_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "empty url", body: `{"url": ""}`},
		{name: "missing url", body: `{}`},
		{name: "garbage body", body: `not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/shorten", "application/json",
				strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRedirect(t *testing.T) {
	ts := newTestServer(t)
	out := shorten(t, ts, "https://example.com")

	resp, err := noRedirectClient().Get(ts.URL + "/r/" + out.Code)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com", resp.Header.Get("Location"))
}

func TestRedirect_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := noRedirectClient().Get(ts.URL + "/r/nosuch")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	out := shorten(t, ts, "https://example.com")

	resp, err := noRedirectClient().Get(ts.URL + "/r/" + out.Code)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/urls/" + out.Code + "/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats dtos.StatsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, "https://example.com", stats.URL)
	assert.Equal(t, int64(1), stats.Clicks)
}

func TestStats_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/urls/nosuch/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClicks(t *testing.T) {
	ts := newTestServer(t)
	out := shorten(t, ts, "https://example.com")

	client := noRedirectClient()
	for i := 0; i < 2; i++ {
		resp, err := client.Get(ts.URL + "/r/" + out.Code)
		require.NoError(t, err)
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/api/urls/" + out.Code + "/clicks")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []dtos.ClickItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	assert.Len(t, events, 2)
}

func TestListURLs_Ordered(t *testing.T) {
	ts := newTestServer(t)
	client := noRedirectClient()

	counts := []int{5, 3, 9}
	codes := make([]string, len(counts))
	for i, n := range counts {
		out := shorten(t, ts, "https://example.com")
		codes[i] = out.Code
		for j := 0; j < n; j++ {
			resp, err := client.Get(ts.URL + "/r/" + out.Code)
			require.NoError(t, err)
			resp.Body.Close()
		}
	}

	resp, err := http.Get(ts.URL + "/api/urls")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []dtos.LinkListItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 3)

	assert.Equal(t, codes[2], items[0].Code)
	assert.Equal(t, int64(9), items[0].Clicks)
	assert.Equal(t, codes[0], items[1].Code)
	assert.Equal(t, codes[1], items[2].Code)
}
