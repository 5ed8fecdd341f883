// Package storage is a thin client for the hosted object storage service.
// The service exposes a list endpoint per bucket and serves uploaded objects
// from stable public URLs; nothing is persisted locally.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to the storage HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Entry represents one stored object
type Entry struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortOptions controls list ordering
type SortOptions struct {
	Column string `json:"column"`
	Order  string `json:"order"`
}

type listRequest struct {
	Prefix string      `json:"prefix"`
	Limit  int         `json:"limit,omitempty"`
	SortBy SortOptions `json:"sortBy"`
}

// NewClient creates a storage client
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns the entries of a bucket under prefix, ordered per sort
func (c *Client) List(ctx context.Context, bucket, prefix string, sort SortOptions) ([]Entry, error) {
	payload, err := json.Marshal(listRequest{Prefix: prefix, SortBy: sort})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, url.PathEscape(bucket))
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage list error: %s", string(body))
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Latest returns the newest entry of a bucket, or nil when empty
func (c *Client) Latest(ctx context.Context, bucket string) (*Entry, error) {
	entries, err := c.List(ctx, bucket, "", SortOptions{Column: "created_at", Order: "desc"})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// PublicURL builds the public download URL for an object
func (c *Client) PublicURL(bucket, name string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(bucket), url.PathEscape(name))
}
