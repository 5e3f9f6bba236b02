package handler

import (
	"github.com/gin-gonic/gin"

	marketingapp "github.com/lojamae/backend/internal/application/marketing"
)

// MarketingHandler handles Meta marketing integration endpoints
type MarketingHandler struct {
	BaseHandler
	marketingService *marketingapp.MarketingService
}

// NewMarketingHandler creates a new MarketingHandler
func NewMarketingHandler(marketingService *marketingapp.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: marketingService}
}

// ConnectAccountRequest carries the OAuth authorization code
type ConnectAccountRequest struct {
	Code string `json:"code" binding:"required"`
}

// PublishPostRequest is the request body for publishing a page post
type PublishPostRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	PageID      string `json:"page_id" binding:"required"`
	Message     string `json:"message" binding:"required,max=5000"`
	Link        string `json:"link" binding:"omitempty,url"`
}

// SyncLeadsRequest is the request body for pulling lead ad submissions
type SyncLeadsRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
	FormID      string `json:"form_id" binding:"required"`
}

// InsightsRequest carries the token for a post metrics lookup
type InsightsRequest struct {
	AccessToken string `form:"access_token" binding:"required"`
}

// Connect exchanges an OAuth code for a page access token. The token
// is returned once and never stored server-side.
func (h *MarketingHandler) Connect(c *gin.Context) {
	var req ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.marketingService.ConnectAccount(c.Request.Context(), getSession(c), marketingapp.ConnectAccountInput{
		Code: req.Code,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Publish posts a message to the store's page
func (h *MarketingHandler) Publish(c *gin.Context) {
	var req PublishPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	postID, err := h.marketingService.PublishPost(c.Request.Context(), getSession(c), marketingapp.PublishPostInput{
		AccessToken: req.AccessToken,
		PageID:      req.PageID,
		Message:     req.Message,
		Link:        req.Link,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"post_id": postID})
}

// Insights returns impression and engagement metrics for a post
func (h *MarketingHandler) Insights(c *gin.Context) {
	var req InsightsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.marketingService.GetPostInsights(c.Request.Context(), getSession(c), req.AccessToken, c.Param("postId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Comments returns the comments on a post
func (h *MarketingHandler) Comments(c *gin.Context) {
	var req InsightsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	comments, err := h.marketingService.ListPostComments(c.Request.Context(), getSession(c), req.AccessToken, c.Param("postId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, comments)
}

// SyncLeads pulls lead ad submissions into the shared lead pool
func (h *MarketingHandler) SyncLeads(c *gin.Context) {
	var req SyncLeadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.marketingService.SyncLeads(c.Request.Context(), getSession(c), marketingapp.SyncLeadsInput{
		AccessToken: req.AccessToken,
		FormID:      req.FormID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
