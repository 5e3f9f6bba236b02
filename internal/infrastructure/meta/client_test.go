package meta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.MetaConfig{
		AppID:       "123456",
		AppSecret:   "app-secret",
		RedirectURI: "https://app.lojamae.com.br/meta/callback",
		GraphURL:    server.URL,
	})
	require.NoError(t, err)
	return client, server
}

func TestNewClient_MissingCredentials(t *testing.T) {
	_, err := NewClient(config.MetaConfig{AppID: "123456"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "META_CONFIG_INVALID", domainErr.Code)
}

func TestClient_ExchangeCode(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/access_token", r.URL.Path)
		assert.Equal(t, "123456", r.URL.Query().Get("client_id"))
		assert.Equal(t, "auth-code", r.URL.Query().Get("code"))
		w.Write([]byte(`{"access_token":"EAAB-token","token_type":"bearer","expires_in":5183944}`))
	})

	token, err := client.ExchangeCode(context.Background(), "auth-code")

	require.NoError(t, err)
	assert.Equal(t, "EAAB-token", token.AccessToken)
	assert.Equal(t, int64(5183944), token.ExpiresIn)
}

func TestClient_PublishPost(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/109876/feed", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Promocao de cortinas sob medida", r.PostForm.Get("message"))
		w.Write([]byte(`{"id":"109876_555"}`))
	})

	postID, err := client.PublishPost(context.Background(), "page-token", "109876",
		"Promocao de cortinas sob medida", "")

	require.NoError(t, err)
	assert.Equal(t, "109876_555", postID)
}

func TestClient_PostInsights(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/109876_555/insights", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"name":"post_impressions","period":"lifetime","values":[{"value":1200},{"value":300}]},
			{"name":"post_clicks","period":"lifetime","values":[{"value":87}]}
		]}`))
	})

	insights, err := client.PostInsights(context.Background(), "page-token", "109876_555")

	require.NoError(t, err)
	assert.Equal(t, int64(1500), insights.Total("post_impressions"))
	assert.Equal(t, int64(87), insights.Total("post_clicks"))
	assert.Equal(t, int64(0), insights.Total("post_reactions"))
}

func TestClient_FormLeads(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/4409_leads/leads", r.URL.Path)
		w.Write([]byte(`{"data":[{
			"id":"990011",
			"created_time":"2026-07-08T14:22:00+0000",
			"field_data":[
				{"name":"full_name","values":["Marcia Souza"]},
				{"name":"phone_number","values":["+5554999887766"]},
				{"name":"email","values":["marcia@exemplo.com.br"]}
			]
		}]}`))
	})

	leads, err := client.FormLeads(context.Background(), "page-token", "4409_leads")

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Marcia Souza", leads[0].Field("full_name"))
	assert.Equal(t, "+5554999887766", leads[0].Field("PHONE_NUMBER"))
	assert.Equal(t, "", leads[0].Field("city"))
}

func TestClient_GraphErrorMapped(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token","type":"OAuthException","code":190}}`))
	})

	_, err := client.PostComments(context.Background(), "stale-token", "109876_555")

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "META_API_ERROR", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Invalid OAuth access token")
}
