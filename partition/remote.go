package partition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/langchain-ai/langchain-unstructured/element"
)

// DefaultURL is the hosted partition API endpoint used when no URL is
// configured explicitly or via the environment.
const DefaultURL = "https://api.unstructuredapp.io/general/v0/general"

// Environment variables consulted for client defaults.
const (
	EnvAPIKey = "UNSTRUCTURED_API_KEY"
	EnvURL    = "UNSTRUCTURED_URL"
)

// StatusError is returned when the partition API answers with a
// non-200 status. The assembly for that document is aborted; retrying
// is the caller's responsibility.
type StatusError struct {
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from the partition API", e.StatusCode)
}

// Client partitions documents through the remote API: one multipart
// request per document, a 200 response decoded as a JSON array of
// element records. A Client may be shared; the request-and-decode
// span for each document runs under a mutex.
type Client struct {
	mu         sync.Mutex
	httpClient *http.Client
	url        string
	apiKey     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithURL sets the API endpoint, overriding UNSTRUCTURED_URL and the
// default.
func WithURL(url string) ClientOption {
	return func(c *Client) { c.url = url }
}

// WithAPIKey sets the access credential, overriding
// UNSTRUCTURED_API_KEY.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) { c.apiKey = key }
}

// NewClient creates a Client. The endpoint and credential default
// from the process environment when not set through options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		url:        os.Getenv(EnvURL),
		apiKey:     os.Getenv(EnvAPIKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.url == "" {
		c.url = DefaultURL
	}
	return c
}

// URL returns the endpoint the client sends requests to.
func (c *Client) URL() string { return c.url }

// Partition sends the document in one request and decodes the
// response body as the element sequence.
func (c *Client) Partition(ctx context.Context, req Request) ([]element.Element, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	data, err := req.content()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	body, contentType, err := buildForm(req, data)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("building partition request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("unstructured-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling partition API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var elems []element.Element
	if err := json.NewDecoder(resp.Body).Decode(&elems); err != nil {
		return nil, fmt.Errorf("decoding partition response: %w", err)
	}
	return elems, nil
}

// buildForm serializes the file bytes and every option into one
// multipart form, mirroring the API's partition parameters.
func buildForm(req Request, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("files", req.name())
	if err != nil {
		return nil, "", fmt.Errorf("building form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing form file: %w", err)
	}

	if req.ContentType != "" {
		if err := w.WriteField("content_type", req.ContentType); err != nil {
			return nil, "", fmt.Errorf("writing content_type field: %w", err)
		}
	}
	if req.Password != "" {
		if err := w.WriteField("password", req.Password); err != nil {
			return nil, "", fmt.Errorf("writing password field: %w", err)
		}
	}
	for key, value := range req.Options {
		s, err := formValue(value)
		if err != nil {
			return nil, "", fmt.Errorf("encoding option %q: %w", key, err)
		}
		if err := w.WriteField(key, s); err != nil {
			return nil, "", fmt.Errorf("writing option %q: %w", key, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// formValue renders an option value as a form field: scalars in their
// natural text form, everything else as JSON.
func formValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
