// Package client talks to the quote desk REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-quote-desk/internal/models"
)

// APIError is any failed request: a non-2xx answer or a transport failure
// (Status 0). Callers treat them all as "operation failed".
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.Err }

// Session is what a successful login returns.
type Session struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Client is a thin JSON client. It is safe for concurrent use once the
// token is set.
type Client struct {
	baseURL  string
	token    string
	language string
	http     *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) { c.token = token }

// SetLanguage sets Accept-Language so server messages come back localized.
func (c *Client) SetLanguage(lang string) { c.language = lang }

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}
	return req, nil
}

// send performs the request and returns the response for 2xx answers.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil && json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
			apiErr.Code = payload.Code
		}
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) ListQuotes(ctx context.Context, skip, limit int) ([]models.Quote, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	var quotes []models.Quote
	if err := c.doJSON(ctx, http.MethodGet, "/api/quotes?"+q.Encode(), nil, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (c *Client) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	var q models.Quote
	if err := c.doJSON(ctx, http.MethodGet, "/api/quotes/"+url.PathEscape(id), nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) CreateQuote(ctx context.Context, q *models.Quote) (*models.Quote, error) {
	var out models.Quote
	if err := c.doJSON(ctx, http.MethodPost, "/api/quotes", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQuote(ctx context.Context, id string, q *models.Quote) (*models.Quote, error) {
	var out models.Quote
	if err := c.doJSON(ctx, http.MethodPut, "/api/quotes/"+url.PathEscape(id), q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/quotes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GetCompany(ctx context.Context) (*models.Company, error) {
	var company models.Company
	if err := c.doJSON(ctx, http.MethodGet, "/api/company", nil, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// Document fetches the printable HTML page of a quote.
func (c *Client) Document(ctx context.Context, id string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/quotes/"+url.PathEscape(id)+"/document", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Err: err}
	}
	return data, nil
}

// ExportQuote downloads a server-rendered file and the name the server chose.
func (c *Client) ExportQuote(ctx context.Context, id, format string) (string, []byte, error) {
	path := "/api/quotes/" + url.PathEscape(id) + "/export/" + url.PathEscape(format)
	resp, err := c.send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, &APIError{Status: resp.StatusCode, Err: err}
	}

	var filename string
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		filename = params["filename"]
	}
	return filename, data, nil
}
