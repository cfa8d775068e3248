// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package salesforce

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/kicksaw/sfictl/internal/log"
)

const apiVersion = "v61.0"

// Config carries the connected-app credentials for the client-credentials
// OAuth flow. These come from the environment's Salesforce secret.
type Config struct {
	// InstanceURL is the org's My Domain URL, e.g. https://acme.my.salesforce.com.
	InstanceURL  string
	ClientID     string
	ClientSecret string
}

// Client is a minimal Salesforce REST client: token acquisition plus sobject
// create and query, which is all the Integration App records need.
type Client struct {
	cfg  Config
	http *retryablehttp.Client

	mu    sync.Mutex
	token string
}

// New builds a client with the integration's HTTP posture: 30s timeout and
// one retry on transport-level failures.
func New(cfg Config) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 1
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = nil
	return &Client{cfg: cfg, http: rc}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ErrorDesc   string `json:"error_description"`
}

// authenticate fetches and caches an access token.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.cfg.InstanceURL+"/services/oauth2/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("unexpected token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || token.AccessToken == "" {
		return "", fmt.Errorf("token request returned %d: %s", resp.StatusCode, token.ErrorDesc)
	}

	c.token = token.AccessToken
	log.Debugf("salesforce token acquired")
	return c.token, nil
}

type createResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Errors  []any  `json:"errors"`
}

// CreateSObject creates a record of the named sobject type and returns its id.
func (c *Client) CreateSObject(ctx context.Context, sobject string, fields map[string]any) (string, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/services/data/%s/sobjects/%s", c.cfg.InstanceURL, apiVersion, sobject)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create %s failed: %w", sobject, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create %s returned %d: %s", sobject, resp.StatusCode, string(body))
	}

	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("unexpected create response for %s: %w", sobject, err)
	}
	if !created.Success {
		return "", fmt.Errorf("create %s was not successful: %v", sobject, created.Errors)
	}
	return created.ID, nil
}

type queryResponse struct {
	TotalSize int              `json:"totalSize"`
	Records   []map[string]any `json:"records"`
}

// QueryOne runs a SOQL query and returns the first record, or nil when the
// query matched nothing.
func (c *Client) QueryOne(ctx context.Context, soql string) (map[string]any, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"%s/services/data/%s/query?q=%s",
		c.cfg.InstanceURL, apiVersion, url.QueryEscape(soql),
	)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("query returned %d: %s", resp.StatusCode, string(body))
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unexpected query response: %w", err)
	}
	if result.TotalSize == 0 {
		return nil, nil
	}
	return result.Records[0], nil
}
