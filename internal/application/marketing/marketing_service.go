package marketing

import (
	"context"

	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/infrastructure/meta"
)

// leadOrigemMeta marks leads pulled from Meta lead ad forms
const leadOrigemMeta = "META_ADS"

// GraphAPI is the outbound surface of the Meta adapter used by the
// marketing service
type GraphAPI interface {
	ExchangeCode(ctx context.Context, code string) (*meta.TokenResponse, error)
	PublishPost(ctx context.Context, accessToken, pageID, message, link string) (string, error)
	PostInsights(ctx context.Context, accessToken, postID string) (*meta.PostInsights, error)
	PostComments(ctx context.Context, accessToken, postID string) ([]meta.Comment, error)
	FormLeads(ctx context.Context, accessToken, formID string) ([]meta.LeadEntry, error)
}

// MarketingService drives the Meta integration: account connection,
// page publishing, engagement metrics, and lead ad intake into the
// unclaimed lead pool.
type MarketingService struct {
	graph    GraphAPI
	leadRepo crm.LeadRepository
	gate     *authz.Gate
	logger   *zap.Logger
}

// NewMarketingService creates a new marketing service
func NewMarketingService(graph GraphAPI, leadRepo crm.LeadRepository, gate *authz.Gate, logger *zap.Logger) *MarketingService {
	return &MarketingService{
		graph:    graph,
		leadRepo: leadRepo,
		gate:     gate,
		logger:   logger,
	}
}

// ConnectAccount exchanges an OAuth callback code for an access token
func (s *MarketingService) ConnectAccount(ctx context.Context, session identity.Session, input ConnectAccountInput) (*ConnectAccountResult, error) {
	if err := s.gate.Authorize(session, authz.ActionManageMarketing, nil); err != nil {
		return nil, err
	}

	token, err := s.graph.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	return &ConnectAccountResult{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
	}, nil
}

// PublishPost publishes to a page feed and returns the post ID
func (s *MarketingService) PublishPost(ctx context.Context, session identity.Session, input PublishPostInput) (string, error) {
	if err := s.gate.Authorize(session, authz.ActionManageMarketing, nil); err != nil {
		return "", err
	}

	postID, err := s.graph.PublishPost(ctx, input.AccessToken, input.PageID, input.Message, input.Link)
	if err != nil {
		return "", err
	}
	s.logger.Info("post published",
		zap.String("page_id", input.PageID),
		zap.String("post_id", postID))
	return postID, nil
}

// GetPostInsights summarizes the engagement metrics of one post
func (s *MarketingService) GetPostInsights(ctx context.Context, session identity.Session, accessToken, postID string) (*PostInsightsResult, error) {
	if err := s.gate.Authorize(session, authz.ActionManageMarketing, nil); err != nil {
		return nil, err
	}

	insights, err := s.graph.PostInsights(ctx, accessToken, postID)
	if err != nil {
		return nil, err
	}
	return &PostInsightsResult{
		PostID:       postID,
		Impressions:  insights.Total("post_impressions"),
		EngagedUsers: insights.Total("post_engaged_users"),
		Clicks:       insights.Total("post_clicks"),
	}, nil
}

// ListPostComments returns the comments on one post
func (s *MarketingService) ListPostComments(ctx context.Context, session identity.Session, accessToken, postID string) ([]meta.Comment, error) {
	if err := s.gate.Authorize(session, authz.ActionManageMarketing, nil); err != nil {
		return nil, err
	}
	return s.graph.PostComments(ctx, accessToken, postID)
}

// SyncLeads pulls the submissions of a lead ad form and feeds them
// into the unclaimed pool. Submissions without a name or phone cannot
// become leads and are counted as ignored, as is anything the pool
// rejects.
func (s *MarketingService) SyncLeads(ctx context.Context, session identity.Session, input SyncLeadsInput) (*SyncLeadsResult, error) {
	if err := s.gate.Authorize(session, authz.ActionManageMarketing, nil); err != nil {
		return nil, err
	}

	entries, err := s.graph.FormLeads(ctx, input.AccessToken, input.FormID)
	if err != nil {
		return nil, err
	}

	result := &SyncLeadsResult{Recebidos: len(entries)}
	for _, entry := range entries {
		lead, err := crm.NewLead(
			entry.Field("full_name"),
			entry.Field("phone_number"),
			entry.Field("email"),
			leadOrigemMeta,
		)
		if err != nil {
			result.Ignorados++
			s.logger.Warn("lead ad submission skipped",
				zap.String("entry_id", entry.ID),
				zap.Error(err))
			continue
		}
		if err := s.leadRepo.Save(ctx, lead); err != nil {
			result.Ignorados++
			s.logger.Error("lead ad submission not saved",
				zap.String("entry_id", entry.ID),
				zap.Error(err))
			continue
		}
		result.Criados++
	}

	s.logger.Info("lead ads synced",
		zap.String("form_id", input.FormID),
		zap.Int("recebidos", result.Recebidos),
		zap.Int("criados", result.Criados))
	return result, nil
}
