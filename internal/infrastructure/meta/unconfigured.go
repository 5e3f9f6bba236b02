package meta

import (
	"context"

	"github.com/lojamae/backend/internal/domain/shared"
)

// Unconfigured returns a Graph client that rejects every call. It
// keeps the marketing endpoints mounted when credentials are absent so
// clients get a clear error instead of a 404.
func Unconfigured() *UnconfiguredClient {
	return &UnconfiguredClient{}
}

// UnconfiguredClient is the no-credentials stand-in for Client
type UnconfiguredClient struct{}

var errUnconfigured = shared.NewDomainError("META_CONFIG_INVALID", "Meta integration is not configured")

func (c *UnconfiguredClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	return nil, errUnconfigured
}

func (c *UnconfiguredClient) PublishPost(ctx context.Context, accessToken, pageID, message, link string) (string, error) {
	return "", errUnconfigured
}

func (c *UnconfiguredClient) PostInsights(ctx context.Context, accessToken, postID string) (*PostInsights, error) {
	return nil, errUnconfigured
}

func (c *UnconfiguredClient) PostComments(ctx context.Context, accessToken, postID string) ([]Comment, error) {
	return nil, errUnconfigured
}

func (c *UnconfiguredClient) FormLeads(ctx context.Context, accessToken, formID string) ([]LeadEntry, error) {
	return nil, errUnconfigured
}
