package inference

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

// DefaultTimeout bounds a single model call, including model warm-up.
const DefaultTimeout = 120 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

type Options struct {
	WaitForModel bool `json:"wait_for_model"`
}

type TextToImageRequest struct {
	Inputs  string  `json:"inputs"`
	Options Options `json:"options"`
}

// Response is the uninterpreted result of one model call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// TextToImage posts the prompt to the model endpoint and returns whatever came
// back. Non-2xx statuses are not errors; only transport failures and timeouts
// are.
func (c *Client) TextToImage(ctx context.Context, model, prompt string) (*Response, error) {
	jsonData, err := json.Marshal(TextToImageRequest{
		Inputs:  prompt,
		Options: Options{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL(model), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png, image/jpeg, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) modelURL(model string) string {
	segments := strings.Split(model, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimSuffix(c.baseURL, "/") + "/models/" + strings.Join(segments, "/")
}
