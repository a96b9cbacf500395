package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// proxyClient is shared by all proxy handlers.
var proxyClient = &http.Client{
	Timeout: 30 * time.Second,
}

// hopHeaders are connection-scoped headers that must not be forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// identityHeaders carry the caller's tenant and user claims through to the
// backend services.
var identityHeaders = []string{
	"X-Tenant-ID",
	"X-Store-ID",
	"X-User-ID",
	"X-User-Roles",
}

// HandleProxy forwards the request (method, headers, JSON body) to
// serviceURL plus the wildcard path and relays the backend's response
// untouched.
func HandleProxy(serviceURL string, logger *zap.Logger) gin.HandlerFunc {
	serviceURL = strings.TrimSuffix(serviceURL, "/")

	return func(c *gin.Context) {
		url := serviceURL + c.Param("path")
		if raw := c.Request.URL.RawQuery; raw != "" {
			url += "?" + raw
		}

		var body io.Reader
		if c.Request.Body != nil {
			body = c.Request.Body
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, url, body)
		if err != nil {
			logger.Error("Failed to build proxy request", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		copyHeaders(req.Header, c.Request.Header)

		resp, err := proxyClient.Do(req)
		if err != nil {
			logger.Error("Backend request failed",
				zap.String("url", url),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
			return
		}
		defer resp.Body.Close()

		for key, values := range resp.Header {
			if isHopHeader(key) {
				continue
			}
			for _, v := range values {
				c.Writer.Header().Add(key, v)
			}
		}
		c.Status(resp.StatusCode)
		if _, err := io.Copy(c.Writer, resp.Body); err != nil {
			logger.Warn("Failed to relay backend response", zap.Error(err))
		}
	}
}

// HandleProxyDelete forwards a DELETE like HandleProxy but additionally
// requires the caller's identity headers and forwards them explicitly, so a
// backend can audit who removed what. Requests without a tenant are refused.
func HandleProxyDelete(serviceURL string, logger *zap.Logger) gin.HandlerFunc {
	serviceURL = strings.TrimSuffix(serviceURL, "/")

	return func(c *gin.Context) {
		tenantID := c.GetHeader("X-Tenant-ID")
		if tenantID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Tenant-ID header"})
			return
		}

		url := serviceURL + c.Param("path")
		if raw := c.Request.URL.RawQuery; raw != "" {
			url += "?" + raw
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodDelete, url, nil)
		if err != nil {
			logger.Error("Failed to build proxy request", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		for _, name := range identityHeaders {
			if value := c.GetHeader(name); value != "" {
				req.Header.Set(name, value)
			}
		}

		resp, err := proxyClient.Do(req)
		if err != nil {
			logger.Error("Backend request failed",
				zap.String("url", url),
				zap.Error(err),
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
			return
		}
		defer resp.Body.Close()

		c.Status(resp.StatusCode)
		if _, err := io.Copy(c.Writer, resp.Body); err != nil {
			logger.Warn("Failed to relay backend response", zap.Error(err))
		}
	}
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if isHopHeader(key) {
			continue
		}
		for _, v := range values {
			dst.Add(key, v)
		}
	}
}

func isHopHeader(name string) bool {
	for _, h := range hopHeaders {
		if strings.EqualFold(h, name) {
			return true
		}
	}
	return false
}
