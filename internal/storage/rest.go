package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RESTClient talks to a Supabase-compatible storage REST API using the
// service-role key.
type RESTClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewRESTClient returns a client for the storage API rooted at baseURL.
func NewRESTClient(baseURL, serviceKey string, timeout time.Duration) *RESTClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Put uploads data, overwriting any existing object of the same name.
func (c *RESTClient) Put(ctx context.Context, bucket, name, contentType string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(bucket, name), bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	req.ContentLength = int64(len(data))

	return c.do(req)
}

// Delete removes a single object.
func (c *RESTClient) Delete(ctx context.Context, bucket, name string) error {
	body, err := json.Marshal(map[string][]string{"prefixes": {name}})
	if err != nil {
		return fmt.Errorf("encode delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/storage/v1/object/"+url.PathEscape(bucket), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// PublicURL returns the unauthenticated download address of an object in a
// public bucket.
func (c *RESTClient) PublicURL(bucket, name string) string {
	return c.baseURL + "/storage/v1/object/public/" + bucket + "/" + name
}

func (c *RESTClient) objectURL(bucket, name string) string {
	return c.baseURL + "/storage/v1/object/" + url.PathEscape(bucket) + "/" + escapePath(name)
}

func (c *RESTClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
}

func (c *RESTClient) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(payload, &apiErr) == nil && (apiErr.Message != "" || apiErr.Error != "") {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Error
		}
		return fmt.Errorf("storage responded %d: %s", resp.StatusCode, msg)
	}
	return fmt.Errorf("storage responded %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
}

func escapePath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
