// Package network provides the HTTP clients shared by all city providers.
package network

import (
	"net/http"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/tonneli-cli/tonneli/key"
)

// Client is the default client for municipal APIs.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

var (
	spoofed     *http.Client
	spoofedOnce sync.Once
)

// Spoofed returns the client presenting a browser TLS fingerprint.
func Spoofed() *http.Client {
	spoofedOnce.Do(func() {
		spoofed = &http.Client{
			Timeout:   time.Minute,
			Transport: NewFingerprintTransport(),
		}
	})
	return spoofed
}

// Default returns the client selected by configuration.
func Default() *http.Client {
	if viper.GetBool(key.NetworkSpoofTLS) {
		return Spoofed()
	}
	return Client
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}

// BrowserUserAgent is sent by scripted providers scraping portals built for browsers.
const BrowserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
