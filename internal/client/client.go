// Package client talks to a NoteNest (or compatible) backend over REST. The
// same Client satisfies both the document-store and the identity-provider
// contracts, sharing one bearer token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

const requestTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu            sync.RWMutex
	token         string
	onTokenChange func(string)
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// WithTokenListener observes token changes, so a caller can persist the
// session across process restarts.
func WithTokenListener(listener func(token string)) Option {
	return func(client *Client) {
		client.onTokenChange = listener
	}
}

func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	for _, option := range options {
		option(client)
	}
	return client
}

func (client *Client) Token() string {
	client.mu.RLock()
	defer client.mu.RUnlock()
	return client.token
}

func (client *Client) SetToken(token string) {
	client.mu.Lock()
	client.token = token
	listener := client.onTokenChange
	client.mu.Unlock()

	if listener != nil {
		listener(token)
	}
}

// apiFailure is a non-2xx answer from the backend.
type apiFailure struct {
	Status  int
	Message string
}

func (failure *apiFailure) Error() string {
	return fmt.Sprintf("backend answered %d: %s", failure.Status, failure.Message)
}

func (client *Client) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	return retry.Do(
		func() error {
			return client.doOnce(ctx, method, path, query, body, out)
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

func (client *Client) doOnce(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")
	if token := client.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &apiFailure{
			Status:  response.StatusCode,
			Message: decodeErrorMessage(response.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeErrorMessage(body io.Reader) string {
	envelope := struct {
		Error string `json:"error"`
	}{}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil || envelope.Error == "" {
		return "unexpected error"
	}
	return envelope.Error
}

// Network errors and 5xx answers are worth retrying; anything the backend
// decided on purpose is not.
func isTransient(err error) bool {
	if failure, ok := err.(*apiFailure); ok {
		return failure.Status >= 500
	}
	return true
}

func failureStatus(err error) int {
	if failure, ok := err.(*apiFailure); ok {
		return failure.Status
	}
	return 0
}
