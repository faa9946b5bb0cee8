package httpclient

import (
	"net/http"
	"time"
)

// sharedTransport is reused across all pooled clients so the
// generation endpoint sees warm connections instead of a fresh TLS
// handshake per request.
var sharedTransport = &http.Transport{
	MaxIdleConns:        20,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     120 * time.Second,
	DisableKeepAlives:   false,
}

// NewPooledClient creates an http.Client that shares a connection pool
// with other pooled clients. The timeout bounds the whole exchange;
// callers map it to a transport failure.
func NewPooledClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: sharedTransport,
	}
}
