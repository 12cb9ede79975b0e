package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"listing-slideshow/pkg/clock"
	"listing-slideshow/pkg/retry"
)

func testPolicy(fake *clock.Fake) retry.Policy {
	return retry.Policy{MaxAttempts: 3, Backoff: retry.Linear(time.Second), Clock: fake}
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("expected limit=5, got %q", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, testPolicy(clock.NewFake(time.Unix(0, 0))))
	var out []map[string]interface{}
	err := c.Fetch(context.Background(), "list", "/listings", url.Values{"limit": {"5"}}, func(b []byte) error {
		return json.Unmarshal(b, &out)
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
}

func TestFetchErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    error
	}{
		{
			name:    "status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			kind:    ErrHTTPStatus,
		},
		{
			name:    "malformed",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("<html>")) },
			kind:    ErrMalformedResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			fake := clock.NewFake(time.Unix(0, 0))
			c := NewClient(srv.URL, time.Second, testPolicy(fake))
			var out interface{}
			err := c.Fetch(context.Background(), "list", "listings", nil, func(b []byte) error {
				return json.Unmarshal(b, &out)
			})
			if !errors.Is(err, tt.kind) {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
			if got := atomic.LoadInt32(&calls); got != 3 {
				t.Errorf("expected 3 attempts, got %d", got)
			}
			if got := fake.Slept(); got != 3*time.Second {
				t.Errorf("expected 3s of backoff, got %v", got)
			}
		})
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base, time.Second, testPolicy(clock.NewFake(time.Unix(0, 0))))
	err := c.Fetch(context.Background(), "list", "listings", nil, func([]byte) error { return nil })
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError in chain, got %T", err)
	}
}

func TestURL(t *testing.T) {
	c := NewClient("http://origin.test/", 0, retry.DefaultPolicy())
	if got := c.URL("/listings/7/images", nil); got != "http://origin.test/listings/7/images" {
		t.Errorf("URL = %q", got)
	}
	if got := c.URL("listings", url.Values{"b": {"2"}, "a": {"1"}}); got != "http://origin.test/listings?a=1&b=2" {
		t.Errorf("URL = %q", got)
	}
}
