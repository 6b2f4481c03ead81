// Package databricks is a minimal client for the Databricks Jobs and Unity
// Catalog REST APIs.
package databricks

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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

var (
	errHostEmpty        = errors.New("workspace host is empty")
	errNoCredentials    = errors.New("no credentials: set a token or a client id and secret")
	errMixedCredentials = errors.New("both a token and client credentials are set")
)

type Config struct {
	Host         string
	Token        string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client that authenticates with a personal access token or,
// when a client id and secret are given, OAuth machine-to-machine tokens
// from the workspace's /oidc/v1/token endpoint.
func New(ctx context.Context, cfg Config) (*Client, error) {
	base, err := parseHost(cfg.Host)
	if err != nil {
		return nil, err
	}

	var hc *http.Client
	switch {
	case cfg.Token != "" && (cfg.ClientID != "" || cfg.ClientSecret != ""):
		return nil, errMixedCredentials
	case cfg.Token != "":
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}))
	case cfg.ClientID != "" && cfg.ClientSecret != "":
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     base.JoinPath("oidc", "v1", "token").String(),
			Scopes:       []string{"all-apis"},
			AuthStyle:    oauth2.AuthStyleInHeader,
		}
		hc = cc.Client(ctx)
	default:
		return nil, errNoCredentials
	}
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	return &Client{base: base, http: hc}, nil
}

func parseHost(host string) (*url.URL, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errHostEmpty
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(strings.TrimRight(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse host: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse host: %w: %q", errHostEmpty, host)
	}
	return u, nil
}

// APIError is a non-2xx response from the workspace.
type APIError struct {
	StatusCode int
	Code       string `json:"error_code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code == "" && e.Message == "" {
		return fmt.Sprintf("databricks: http %d", e.StatusCode)
	}
	return fmt.Sprintf("databricks: http %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base.JoinPath(path)
	u.RawQuery = q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.JoinPath(path).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Error bodies are JSON on the API but may be HTML from a proxy.
		_ = json.Unmarshal(b, apiErr)
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, apiErr)
	}
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
