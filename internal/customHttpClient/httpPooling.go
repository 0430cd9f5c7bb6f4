package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/campuslms/RetrievalAPI/internal/config"
)

var (
	once   sync.Once
	pooled *http.Client
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// GetPooledClient hands encoder clients a shared keep-alive transport so
// back-to-back embedding batches reuse connections.
func GetPooledClient() *http.Client {
	once.Do(func() {
		pooled = &http.Client{Transport: customTransport}
	})
	return pooled
}
