package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listing-slideshow/pkg/config"

	"github.com/gin-gonic/gin"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","title":"Flat","price":1000,"images":["x.jpg"]}]`))
	}))
	t.Cleanup(feed.Close)

	static := t.TempDir()
	if err := os.WriteFile(filepath.Join(static, "index.html"), []byte("<html>kiosk</html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs := filepath.Join(t.TempDir(), "swagger.json")
	if err := os.WriteFile(docs, []byte(`{"swagger":"2.0","info":{"title":"Listing Slideshow API"}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Parse([]byte("server:\n  static_dir: " + static + "\n  docs_path: " + docs + "\nfeed:\n  base_url: " + feed.URL + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	app := NewApp(cfg)
	t.Cleanup(app.cleanup)
	return app
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/health", http.StatusOK, `"status"`},
		{http.MethodGet, "/api/listings?limit=1", http.StatusOK, `"Flat"`},
		{http.MethodGet, "/app.js", http.StatusOK, "console.log"},
		{http.MethodGet, "/some/client/route", http.StatusOK, "kiosk"},
		{http.MethodGet, "/api/unknown", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/playback", http.StatusOK, `"state"`},
		{http.MethodGet, "/swagger.json", http.StatusOK, "Listing Slideshow API"},
		{http.MethodGet, "/swagger/index.html", http.StatusOK, "swagger-ui"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		app.Router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.wantStatus || !strings.Contains(w.Body.String(), tt.wantBody) {
			t.Errorf("%s %s = %d %q; want %d containing %q", tt.method, tt.path, w.Code, w.Body.String(), tt.wantStatus, tt.wantBody)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s %s: missing X-Request-ID", tt.method, tt.path)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/listings", nil)
	req.Header.Set("Origin", "http://kiosk.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q; want *", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
