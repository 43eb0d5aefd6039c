// Package network retrieves pages of the streaming website.
package network

import (
	"net/http"
	"time"
)

// Client is the HTTP client shared across the application.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// NewClient returns the shared client, or one presenting a Chrome TLS fingerprint.
func NewClient(fingerprint bool) *http.Client {
	if !fingerprint {
		return Client
	}
	return &http.Client{
		Timeout:   time.Minute,
		Transport: newFingerprintTransport(),
	}
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
