// Package geo looks up the caller's approximate coordinates from their public
// IP address.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultEndpoint = "http://ip-api.com/json/?fields=status,message,city,country,lat,lon,timezone,query"

// Location is a geolocation answer.
type Location struct {
	City      string
	Country   string
	Latitude  float64
	Longitude float64
	Timezone  string
	IP        string
}

// GeolocationError wraps every failure of a lookup. The client never
// substitutes default coordinates; callers decide on a fallback.
type GeolocationError struct {
	Op  string
	Err error
}

func (e *GeolocationError) Error() string {
	return fmt.Sprintf("geolocation %s: %v", e.Op, e.Err)
}

func (e *GeolocationError) Unwrap() error {
	return e.Err
}

// ipAPIResponse is shaped for the ip-api.com response
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`
	Query    string  `json:"query"`
}

type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Locate(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return Location{}, &GeolocationError{Op: "build request", Err: err}
	}
	req.Header.Set("User-Agent", "athan/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Location{}, &GeolocationError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, &GeolocationError{Op: "request", Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, &GeolocationError{Op: "decode", Err: err}
	}
	if body.Status != "success" {
		return Location{}, &GeolocationError{Op: "lookup", Err: fmt.Errorf("status %q: %s", body.Status, body.Message)}
	}

	return Location{
		City:      body.City,
		Country:   body.Country,
		Latitude:  body.Lat,
		Longitude: body.Lon,
		Timezone:  body.Timezone,
		IP:        body.Query,
	}, nil
}
