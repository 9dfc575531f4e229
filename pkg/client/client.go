// Package client is a typed HTTP client for the userboard API. It performs
// no retries, timeouts or backoff; failures surface immediately to the
// caller, which owns the retry decision.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Address struct {
	Street string   `json:"street"`
	City   string   `json:"city"`
	Zip    string   `json:"zip"`
	Geo    GeoPoint `json:"geo"`
}

type User struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Company     string    `json:"company,omitempty"`
	Address     Address   `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUser is the request payload for create and for full-state updates.
type NewUser struct {
	Username    string  `json:"username"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       string  `json:"email"`
	Company     string  `json:"company,omitempty"`
	Address     Address `json:"address"`
}

// APIError is a non-success envelope decoded from the server.
type APIError struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Message, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{},
	}
}

func (c *Client) Create(ctx context.Context, u NewUser) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/api/user/create", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0)
	if err := c.do(ctx, http.MethodGet, "/api/user/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/user/profile/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the full current state; the server merges and re-validates.
func (c *Client) Update(ctx context.Context, id string, u NewUser) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPut, "/api/user/update/"+id, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/user/delete/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: res.StatusCode, Message: env.Message, Details: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
