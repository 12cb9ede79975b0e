package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"listing-slideshow/internal/models"
	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/config"
)

func TestBuildServesSlidesFromFeed(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/listings":
			gotQuery = r.URL.RawQuery
			w.Write([]byte(`[{"id":"7","title":"Cottage","price":250000,"images":["a.jpg"]}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg, err := config.Parse([]byte("feed:\n  base_url: " + srv.URL + "\nslideshow:\n  limit: 5\n  status: available\n"))
	if err != nil {
		t.Fatal(err)
	}
	deps := Build(cfg, clock.NewFake(time.Unix(0, 0)))

	slides, err := deps.Service.LoadSlides(context.Background())
	if err != nil {
		t.Fatalf("LoadSlides returned error: %v", err)
	}
	if len(slides) != 1 || slides[0].(*models.ListingSlide).Listing.Price != "€250,000" {
		t.Errorf("unexpected slides: %+v", slides)
	}
	if gotQuery != "limit=5&status=available" {
		t.Errorf("query = %q; want limit=5&status=available", gotQuery)
	}
}

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := LoadConfiguration(os.Stderr)
	if err != nil {
		t.Fatalf("LoadConfiguration returned error: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d; want 9100", cfg.Server.Port)
	}

	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := LoadConfiguration(os.Stderr); err == nil {
		t.Error("expected error for missing config file")
	}
}
