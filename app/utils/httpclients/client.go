package httpclients

import (
	"time"

	"resty.dev/v3"
)

// Generation calls are slow; the timeout here is the hard upper bound after
// which an in-flight call is treated as failed.
const defaultClientTimeout = 180 * time.Second

// NewClient creates a named resty client with the shared timeout applied.
func NewClient(name string) *resty.Client {
	client := resty.New()
	client.SetTimeout(defaultClientTimeout)
	client.SetHeader("User-Agent", name)
	return client
}
