package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	apperrors "listing-slideshow/internal/errors"
	"listing-slideshow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ListingsProxy forwards listing requests to the origin so browsers can reach
// it through this server's CORS policy.
type ListingsProxy struct {
	proxy *httputil.ReverseProxy
}

// NewListingsProxy proxies {prefix}{rest} to {origin}/listings{rest}.
func NewListingsProxy(origin, prefix string) (*ListingsProxy, error) {
	target, err := url.Parse(strings.TrimRight(origin, "/"))
	if err != nil {
		return nil, err
	}
	p := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			rest := strings.TrimPrefix(pr.In.URL.Path, prefix)
			pr.Out.URL.Scheme = target.Scheme
			pr.Out.URL.Host = target.Host
			pr.Out.URL.Path = target.Path + "/listings" + rest
			pr.Out.URL.RawPath = ""
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		ModifyResponse: func(resp *http.Response) error {
			for key := range resp.Header {
				if strings.HasPrefix(http.CanonicalHeaderKey(key), "Access-Control-") {
					resp.Header.Del(key)
				}
			}
			return nil
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.GlobalLogger.Errorf("Listing proxy failed: path=%s, error=%v", r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(gin.H{
				"success": false,
				"error": gin.H{
					"message": apperrors.MsgServiceUnavailable,
					"code":    apperrors.ErrCodeServiceUnavailable,
				},
			})
		},
	}
	return &ListingsProxy{proxy: p}, nil
}

func (p *ListingsProxy) Handle(c *gin.Context) {
	p.proxy.ServeHTTP(c.Writer, c.Request)
}
