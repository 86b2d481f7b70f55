// Package api talks to the restaurant REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/confusion-tui/internal/menu"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

const maxErrorBody = 4096

// DishService reads and updates dishes.
type DishService interface {
	GetDishes(ctx context.Context) ([]menu.Dish, error)
	GetDishIDs(ctx context.Context) ([]string, error)
	GetDish(ctx context.Context, id string) (*menu.Dish, error)
	PutDish(ctx context.Context, dish menu.Dish) (*menu.Dish, error)
}

// FeedbackService creates feedback records.
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, fb menu.Feedback) (*menu.Feedback, error)
}

// Client is everything the UI needs from the backend.
type Client interface {
	DishService
	FeedbackService
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Status     int
	StatusText string
	Message    string
}

func (e *HTTPError) Error() string {
	return strings.TrimSpace(fmt.Sprintf("%d - %s %s", e.Status, e.StatusText, e.Message))
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client rooted at baseURL. timeout bounds each request;
// zero keeps the default of ten seconds.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Close releases idle connections.
func (c *HTTPClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *HTTPClient) GetDishes(ctx context.Context) ([]menu.Dish, error) {
	var dishes []menu.Dish
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/dishes", nil, &dishes); err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// GetDishIDs returns dish ids in server order.
func (c *HTTPClient) GetDishIDs(ctx context.Context) ([]string, error) {
	dishes, err := c.GetDishes(ctx)
	if err != nil {
		return nil, err
	}
	return menu.DishIDs(dishes), nil
}

func (c *HTTPClient) GetDish(ctx context.Context, id string) (*menu.Dish, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("dish id is required")
	}
	out := &menu.Dish{}
	if err := c.doJSON(ctx, http.MethodGet, c.dishURL(id), nil, out); err != nil {
		return nil, fmt.Errorf("get dish %s: %w", id, err)
	}
	return out, nil
}

// PutDish replaces the dish document and returns the stored version.
func (c *HTTPClient) PutDish(ctx context.Context, dish menu.Dish) (*menu.Dish, error) {
	if strings.TrimSpace(dish.ID) == "" {
		return nil, fmt.Errorf("dish id is required")
	}
	out := &menu.Dish{}
	if err := c.doJSON(ctx, http.MethodPut, c.dishURL(dish.ID), dish, out); err != nil {
		return nil, fmt.Errorf("put dish %s: %w", dish.ID, err)
	}
	return out, nil
}

func (c *HTTPClient) SubmitFeedback(ctx context.Context, fb menu.Feedback) (*menu.Feedback, error) {
	out := &menu.Feedback{}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/feedback", fb, out); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) dishURL(id string) string {
	return fmt.Sprintf("%s/dishes/%s", c.baseURL, url.PathEscape(id))
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func newHTTPError(resp *http.Response) *HTTPError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := strings.TrimSpace(string(raw))
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Message != "" {
		message = payload.Message
	}
	return &HTTPError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Message:    message,
	}
}
