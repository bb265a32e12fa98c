// Package network provides the HTTP client shared by the parts of the application that go online.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client. Only short requests are made, so it gives up quickly.
var Client = &http.Client{
	Timeout:   10 * time.Second,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 4
	t.MaxIdleConnsPerHost = 2
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 5 * time.Second
	return t
}
