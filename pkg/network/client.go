// Package network provides the shared HTTP client used for remote provider
// and deck-site communication.
package network

import (
	"net/http"
	"time"
)

// Client is the singleton HTTP client shared across the application.
// Crawling a source fans out many small metadata requests against the same
// host, so the transport keeps a generous idle pool per host.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}
