package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxDocumentBytes caps the size of a fetched catalog document.
const MaxDocumentBytes = 1 << 20

// Source yields a catalog from somewhere outside the process.
type Source interface {
	Fetch(ctx context.Context) (*Catalog, error)
}

// HTTPSource fetches a catalog document from a URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml")
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	if len(body) > MaxDocumentBytes {
		return nil, fmt.Errorf("catalog GET %s: document exceeds %d bytes", s.url, MaxDocumentBytes)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog GET %s: %d %s", s.url, resp.StatusCode, string(body))
	}
	return Parse(body)
}
