package media

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videomind/internal/app/errors"
)

func pageServer(t *testing.T, html func(baseURL string) string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html(srv.URL))
	})
	mux.HandleFunc("/media/clip.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake mp4 bytes"))
	})
	return srv
}

func TestPageFetchScrapesOpenGraph(t *testing.T) {
	srv := pageServer(t, func(baseURL string) string {
		return fmt.Sprintf(`<html><head>
			<meta property="og:title" content="Demo Clip">
			<meta property="og:site_name" content="DemoSite">
			<meta property="og:video" content="%s/media/clip.mp4?token=abc">
		</head><body></body></html>`, baseURL)
	})

	destDir := t.TempDir()
	info, err := NewPageDownloader().Fetch(context.Background(), srv.URL+"/watch", destDir)
	require.NoError(t, err)

	assert.Equal(t, "Demo Clip", info.Title)
	assert.Equal(t, "DemoSite", info.Source)
	// The query string never leaks into the local filename.
	assert.Equal(t, filepath.Join(destDir, "clip.mp4"), info.FilePath)

	data, err := os.ReadFile(info.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "fake mp4 bytes", string(data))
}

func TestPageFetchFallsBackToVideoURLTag(t *testing.T) {
	srv := pageServer(t, func(baseURL string) string {
		return fmt.Sprintf(`<html><head>
			<title>Fallback Title</title>
			<meta property="og:video:url" content="%s/media/clip.mp4">
		</head></html>`, baseURL)
	})

	info, err := NewPageDownloader().Fetch(context.Background(), srv.URL+"/watch", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "Fallback Title", info.Title)
}

func TestPageFetchRejectsPagesWithoutVideo(t *testing.T) {
	srv := pageServer(t, func(string) string {
		return `<html><head><title>No video here</title></head></html>`
	})

	_, err := NewPageDownloader().Fetch(context.Background(), srv.URL+"/watch", t.TempDir())
	assert.ErrorIs(t, err, errors.ErrUnsupportedSource)
}

func TestPageFetchRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	_, err := NewPageDownloader().Fetch(context.Background(), srv.URL+"/watch", t.TempDir())
	assert.ErrorIs(t, err, errors.ErrUnsupportedSource)
}
