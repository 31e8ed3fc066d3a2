package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/zapiertracker-hub/Whopify-sub000/internal/pkg/env"
)

const defaultCountry = "US"

// Detector resolves the visitor's country for currency preselection on
// the rendered checkout. Lookups run on a short timeout and degrade to
// the last-known value; a slow or dead geo service never blocks the page.
type Detector struct {
	client   *http.Client
	endpoint string

	mu   sync.RWMutex
	last string
}

// NewDetectorFromEnv creates a detector using GEO_ENDPOINT.
func NewDetectorFromEnv() *Detector {
	return &Detector{
		client:   &http.Client{Timeout: 2 * time.Second},
		endpoint: env.GetEnv("GEO_ENDPOINT", "https://api.country.is"),
		last:     defaultCountry,
	}
}

// Country returns the two-letter country code for the caller, falling
// back to the last known value on any failure or timeout.
func (d *Detector) Country(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint, nil)
	if err != nil {
		return d.lastKnown()
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return d.lastKnown()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return d.lastKnown()
	}

	var body struct {
		Country string `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Country == "" {
		return d.lastKnown()
	}

	d.mu.Lock()
	d.last = body.Country
	d.mu.Unlock()
	return body.Country
}

func (d *Detector) lastKnown() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.last
}
