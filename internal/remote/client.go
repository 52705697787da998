package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Requester performs a single named operation against the course API and
// decodes the "data" member of the reply into out.
type Requester interface {
	Request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error
}

type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newrelic.NewRoundTripper(nil),
		},
	}
}

// Authenticated returns a copy of the client that sends the session token
// with every request.
func (c *Client) Authenticated(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

type envelope struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type reply struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

func (c *Client) Request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(envelope{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var r reply
	if err := json.Unmarshal(raw, &r); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decoding response: %w", err)
	}

	if len(r.Errors) > 0 {
		return &Error{Status: resp.StatusCode, Errors: r.Errors}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil || len(r.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}

	return nil
}
