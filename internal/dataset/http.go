package dataset

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a dataset fetch when Options.Timeout is unset.
const DefaultTimeout = 30 * time.Second

type httpSource struct{}

func (httpSource) CanRead(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func (httpSource) Read(ctx context.Context, location string, opt Options) (*Table, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	timeout := opt.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := opt.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch dataset: HTTP %d", resp.StatusCode)
	}

	path := strings.ToLower(u.Path)
	if strings.HasSuffix(path, ".xlsx") {
		return readXLSX(resp.Body, opt.Sheet)
	}
	delim := sniffDelimiter(path)
	if strings.Contains(resp.Header.Get("Content-Type"), "tab-separated") {
		delim = '\t'
	}
	return readCSV(resp.Body, delim)
}
