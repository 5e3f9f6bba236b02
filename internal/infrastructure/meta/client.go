package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/config"
)

// maxResponseSize limits Graph API response bodies
const maxResponseSize = 10 * 1024 * 1024

// Client is an outbound adapter for the Meta Graph API: OAuth code
// exchange, page publishing, insights and lead ad retrieval.
type Client struct {
	config     config.MetaConfig
	httpClient *http.Client
}

// NewClient creates a Graph API client
func NewClient(cfg config.MetaConfig) (*Client, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" {
		return nil, shared.NewDomainError("META_CONFIG_INVALID", "Meta app_id and app_secret are required")
	}
	if cfg.GraphURL == "" {
		cfg.GraphURL = "https://graph.facebook.com/v19.0"
	}
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// ExchangeCode trades an OAuth authorization code for a user access token
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	params := url.Values{}
	params.Set("client_id", c.config.AppID)
	params.Set("client_secret", c.config.AppSecret)
	params.Set("redirect_uri", c.config.RedirectURI)
	params.Set("code", code)

	var token TokenResponse
	if err := c.get(ctx, "/oauth/access_token", params, &token); err != nil {
		return nil, err
	}
	if token.AccessToken == "" {
		return nil, shared.NewDomainError("META_API_ERROR", "Token exchange returned no access token")
	}
	return &token, nil
}

// PublishPost publishes a message to a page feed and returns the post ID
func (c *Client) PublishPost(ctx context.Context, accessToken, pageID, message, link string) (string, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("message", message)
	if link != "" {
		params.Set("link", link)
	}

	var published PublishResponse
	if err := c.post(ctx, "/"+pageID+"/feed", params, &published); err != nil {
		return "", err
	}
	return published.ID, nil
}

// PostInsights fetches engagement metrics for one post
func (c *Client) PostInsights(ctx context.Context, accessToken, postID string) (*PostInsights, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)
	params.Set("metric", "post_impressions,post_engaged_users,post_clicks")

	var envelope insightsEnvelope
	if err := c.get(ctx, "/"+postID+"/insights", params, &envelope); err != nil {
		return nil, err
	}
	return &PostInsights{PostID: postID, Insights: envelope.Data}, nil
}

// PostComments fetches the comments on one post
func (c *Client) PostComments(ctx context.Context, accessToken, postID string) ([]Comment, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)

	var envelope commentsEnvelope
	if err := c.get(ctx, "/"+postID+"/comments", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// FormLeads fetches the submissions of a lead ad form
func (c *Client) FormLeads(ctx context.Context, accessToken, formID string) ([]LeadEntry, error) {
	params := url.Values{}
	params.Set("access_token", accessToken)

	var envelope leadsEnvelope
	if err := c.get(ctx, "/"+formID+"/leads", params, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.GraphURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.GraphURL+path, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.NewDomainError("META_API_UNREACHABLE", "Graph API request failed: "+err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return shared.NewDomainError("META_API_ERROR", "Could not read Graph API response: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		var graphErr graphErrorBody
		if json.Unmarshal(body, &graphErr) == nil && graphErr.Error.Message != "" {
			return shared.NewDomainError("META_API_ERROR",
				fmt.Sprintf("Graph API error %d: %s", graphErr.Error.Code, graphErr.Error.Message))
		}
		return shared.NewDomainError("META_API_ERROR",
			fmt.Sprintf("Graph API returned status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return shared.NewDomainError("META_API_ERROR", "Could not decode Graph API response: "+err.Error())
	}
	return nil
}
