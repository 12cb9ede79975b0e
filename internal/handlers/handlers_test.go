package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/internal/middleware"
	"listing-slideshow/internal/models"
	"listing-slideshow/internal/playback"
	"listing-slideshow/internal/render"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBuilder struct {
	text  string
	opts  models.ListingOptions
	slide []models.Slide
	err   error
}

func (b *stubBuilder) BuildFromText(ctx context.Context, text string) ([]models.Slide, error) {
	b.text = text
	return b.slide, b.err
}

func (b *stubBuilder) BuildFromQuery(ctx context.Context, opts models.ListingOptions) ([]models.Slide, error) {
	b.opts = opts
	return b.slide, b.err
}

type stubController struct {
	calls      []string
	refreshErr error
	status     playback.Status
}

func (s *stubController) Refresh(ctx context.Context) error {
	s.calls = append(s.calls, "refresh")
	return s.refreshErr
}
func (s *stubController) Next() bool       { s.calls = append(s.calls, "next"); return true }
func (s *stubController) Previous() bool   { s.calls = append(s.calls, "previous"); return true }
func (s *stubController) Play()            { s.calls = append(s.calls, "play") }
func (s *stubController) Pause()           { s.calls = append(s.calls, "pause") }
func (s *stubController) TogglePlayPause() { s.calls = append(s.calls, "toggle") }
func (s *stubController) Goto(index int) bool {
	s.calls = append(s.calls, "goto")
	return index >= 0 && index < s.status.Total
}
func (s *stubController) Status() playback.Status { return s.status }

type buildResponse struct {
	Success bool              `json:"success"`
	Data    []json.RawMessage `json:"data"`
	Count   int               `json:"count"`
	Error   string            `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid JSON %q: %v", w.Body.String(), err)
	}
}

func slideshowRouter(b SlideshowBuilder) *gin.Engine {
	h := NewSlideshowHandler(b)
	r := gin.New()
	r.POST("/api/slideshow/build", h.Build)
	r.GET("/api/slideshow", h.Preview)
	return r
}

func TestBuildAcceptsFormAndRawBody(t *testing.T) {
	b := &stubBuilder{slide: []models.Slide{
		&models.MessageSlide{ID: "msg-0", Text: "Welcome"},
		&models.ListingSlide{Listing: models.Listing{ID: "100", Title: "Villa"}},
	}}
	r := slideshowRouter(b)

	form := url.Values{"text_content": {"Welcome;secs:3\n100"}}
	req := httptest.NewRequest(http.MethodPost, "/api/slideshow/build", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("form build status = %d; body %s", w.Code, w.Body.String())
	}
	if b.text != "Welcome;secs:3\n100" {
		t.Errorf("builder got %q", b.text)
	}
	var resp buildResponse
	decode(t, w, &resp)
	if !resp.Success || resp.Count != 2 || len(resp.Data) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !strings.Contains(string(resp.Data[0]), `"type":"message"`) || !strings.Contains(string(resp.Data[1]), `"type":"listing"`) {
		t.Errorf("slides not tagged: %s", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/slideshow/build", strings.NewReader("RX10\n"))
	req.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || b.text != "RX10\n" {
		t.Errorf("raw body build: status %d, builder got %q", w.Code, b.text)
	}
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantOK     bool
	}{
		{"empty body", "  ", nil, http.StatusBadRequest, false},
		{"invalid playlist", "# nothing", apperrors.ErrInvalidInput, http.StatusBadRequest, false},
		{"origin down", "100", &apperrors.FetchFailure{Err: errors.New("down")}, http.StatusServiceUnavailable, false},
		{"everything skipped", "100", apperrors.ErrEmptyResult, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := slideshowRouter(&stubBuilder{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/slideshow/build", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d; want %d", w.Code, tt.wantStatus)
			}
			var resp buildResponse
			decode(t, w, &resp)
			if resp.Success != tt.wantOK || resp.Data == nil || len(resp.Data) != 0 {
				t.Errorf("unexpected response: %s", w.Body.String())
			}
			if !tt.wantOK && resp.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestPreviewParsesQuery(t *testing.T) {
	b := &stubBuilder{slide: []models.Slide{&models.ListingSlide{Listing: models.Listing{ID: "1"}}}}
	r := slideshowRouter(b)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/slideshow?limit=5&status=available", nil))
	if w.Code != http.StatusOK || b.opts.Limit != 5 || b.opts.Filters["status"] != "available" {
		t.Errorf("Preview: status %d, opts %+v", w.Code, b.opts)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/slideshow?limit=lots", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d; want 400", w.Code)
	}
}

func playbackRouter(ctrl PlaybackController, snap Snapshotter) *gin.Engine {
	h := NewPlaybackHandler(ctrl, snap)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/api/playback", h.Status)
	r.POST("/api/playback/goto/:index", h.Goto)
	r.POST("/api/playback/:action", h.Action)
	return r
}

func TestPlaybackActions(t *testing.T) {
	ctrl := &stubController{status: playback.Status{State: playback.StateReady, Playing: true, Total: 3}}
	r := playbackRouter(ctrl, nil)

	for _, action := range []string{"next", "previous", "play", "pause", "toggle", "refresh"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/playback/"+action, nil))
		if w.Code != http.StatusOK {
			t.Errorf("POST %s status = %d; want 200", action, w.Code)
		}
	}
	want := []string{"next", "previous", "play", "pause", "toggle", "refresh"}
	if strings.Join(ctrl.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v; want %v", ctrl.calls, want)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/playback/rewind", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown action status = %d; want 400", w.Code)
	}
}

func TestPlaybackGoto(t *testing.T) {
	ctrl := &stubController{status: playback.Status{State: playback.StateReady, Total: 3}}
	r := playbackRouter(ctrl, nil)

	tests := []struct {
		path       string
		wantStatus int
		accepted   bool
	}{
		{"/api/playback/goto/2", http.StatusOK, true},
		{"/api/playback/goto/7", http.StatusOK, false},
		{"/api/playback/goto/x", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))
		if w.Code != tt.wantStatus {
			t.Errorf("POST %s status = %d; want %d", tt.path, w.Code, tt.wantStatus)
			continue
		}
		if w.Code != http.StatusOK {
			continue
		}
		var resp struct {
			Accepted *bool `json:"accepted"`
		}
		decode(t, w, &resp)
		if resp.Accepted == nil || *resp.Accepted != tt.accepted {
			t.Errorf("POST %s accepted = %v; want %v", tt.path, resp.Accepted, tt.accepted)
		}
	}
}

func TestPlaybackRefreshFailure(t *testing.T) {
	fatal := errors.Join(apperrors.ErrFatalInit, &apperrors.FetchFailure{Err: errors.New("down")})
	ctrl := &stubController{refreshErr: fatal, status: playback.Status{State: playback.StateError}}
	r := playbackRouter(ctrl, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/playback/refresh", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("refresh failure status = %d; want 503", w.Code)
	}

	ctrl.refreshErr = playback.ErrSuperseded
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/playback/refresh", nil))
	if w.Code != http.StatusConflict {
		t.Errorf("superseded refresh status = %d; want 409", w.Code)
	}
}

func TestPlaybackStatusIncludesRendererState(t *testing.T) {
	slide := &models.ListingSlide{Listing: models.Listing{ID: "9", Title: "Loft", Price: "€1,000"}}
	ctrl := &stubController{status: playback.Status{State: playback.StateReady, Playing: true, Index: 1, Total: 4, Current: slide}}
	rec := render.NewRecorder()
	rec.Render(slide)
	rec.SetProgress(0.5)
	rec.Announce("Loft, €1,000")

	w := httptest.NewRecorder()
	playbackRouter(ctrl, rec).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/playback", nil))

	var resp struct {
		State        string          `json:"state"`
		Playing      bool            `json:"playing"`
		Index        int             `json:"index"`
		Total        int             `json:"total"`
		Current      json.RawMessage `json:"current"`
		Announcement string          `json:"announcement"`
		Progress     float64         `json:"progress"`
	}
	decode(t, w, &resp)
	if resp.State != "ready" || !resp.Playing || resp.Index != 1 || resp.Total != 4 {
		t.Errorf("unexpected status: %+v", resp)
	}
	if resp.Announcement != "Loft, €1,000" || resp.Progress != 0.5 {
		t.Errorf("renderer state missing: %+v", resp)
	}
	if !strings.Contains(string(resp.Current), `"id":"9"`) {
		t.Errorf("current slide = %s", resp.Current)
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	ctrl := &stubController{status: playback.Status{State: playback.StateError}}
	r.GET("/health", Health(ctrl))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	var body map[string]string
	decode(t, w, &body)
	if w.Code != http.StatusOK || body["status"] != "degraded" || body["slideshow"] != "error" {
		t.Errorf("health = %d %v", w.Code, body)
	}
}

func TestListingsProxy(t *testing.T) {
	var gotPath, gotQuery string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Access-Control-Allow-Origin", "http://upstream.example")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer upstream.Close()

	proxy, err := NewListingsProxy(upstream.URL+"/", "/api/listings")
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.GET("/api/listings", proxy.Handle)
	r.GET("/api/listings/*path", proxy.Handle)

	tests := []struct {
		path      string
		wantPath  string
		wantQuery string
	}{
		{"/api/listings?limit=5", "/listings", "limit=5"},
		{"/api/listings/42/images", "/listings/42/images", ""},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != http.StatusOK || w.Body.String() != `[{"id":1}]` {
			t.Errorf("GET %s = %d %q", tt.path, w.Code, w.Body.String())
		}
		if gotPath != tt.wantPath || gotQuery != tt.wantQuery {
			t.Errorf("GET %s proxied to %s?%s; want %s?%s", tt.path, gotPath, gotQuery, tt.wantPath, tt.wantQuery)
		}
		if h := w.Header().Get("Access-Control-Allow-Origin"); h != "" {
			t.Errorf("upstream CORS header leaked: %q", h)
		}
	}
}

func TestListingsProxyUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	addr := upstream.URL
	upstream.Close()

	proxy, err := NewListingsProxy(addr, "/api/listings")
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.GET("/api/listings", proxy.Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))
	if w.Code != http.StatusBadGateway || !strings.Contains(w.Body.String(), apperrors.ErrCodeServiceUnavailable) {
		t.Errorf("upstream down = %d %s", w.Code, w.Body.String())
	}
}
