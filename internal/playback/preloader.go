package playback

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"listing-slideshow/pkg/logger"
)

// HTTPPreloader warms upstream image caches by fetching each URL once in the
// background. Relative URLs are resolved against the base URL.
type HTTPPreloader struct {
	base   *url.URL
	client *http.Client

	mu   sync.Mutex
	seen map[string]struct{}
	wg   sync.WaitGroup
}

func NewHTTPPreloader(baseURL string, timeout time.Duration) *HTTPPreloader {
	base, err := url.Parse(baseURL)
	if err != nil {
		logger.GlobalLogger.Warnf("Invalid preload base URL: url=%s, error=%v", baseURL, err)
	}
	return &HTTPPreloader{
		base:   base,
		client: &http.Client{Timeout: timeout},
		seen:   make(map[string]struct{}),
	}
}

// Preload schedules a fetch of rawURL unless it was requested before.
func (p *HTTPPreloader) Preload(rawURL string) {
	target, ok := p.resolve(rawURL)
	if !ok {
		return
	}

	p.mu.Lock()
	if _, dup := p.seen[target]; dup {
		p.mu.Unlock()
		return
	}
	p.seen[target] = struct{}{}
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.fetch(target)
	}()
}

// Wait blocks until every scheduled fetch has finished.
func (p *HTTPPreloader) Wait() {
	p.wg.Wait()
}

func (p *HTTPPreloader) resolve(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if !ref.IsAbs() {
		if p.base == nil {
			return "", false
		}
		ref = p.base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}
	return ref.String(), true
}

func (p *HTTPPreloader) fetch(target string) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, target, nil)
	if err != nil {
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		logger.GlobalLogger.Debugf("Image preload failed: url=%s, error=%v", target, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		logger.GlobalLogger.Debugf("Image preload failed: url=%s, status=%d", target, resp.StatusCode)
	}
}
