package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	crmapp "github.com/lojamae/backend/internal/application/crm"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// LeadHandler handles lead pipeline endpoints
type LeadHandler struct {
	BaseHandler
	leadService *crmapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *crmapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// CreateLeadRequest is the request body for registering a lead
type CreateLeadRequest struct {
	Nome     string `json:"nome" binding:"required,min=2,max=200"`
	Telefone string `json:"telefone" binding:"required,min=8,max=20"`
	Email    string `json:"email" binding:"omitempty,email"`
	Origem   string `json:"origem" binding:"max=50"`
}

// TransitionLeadRequest carries the pipeline event to apply
type TransitionLeadRequest struct {
	Event string `json:"event" binding:"required"`
}

// Create registers a new lead in the shared pool
func (h *LeadHandler) Create(c *gin.Context) {
	var req CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), getSession(c), crmapp.CreateLeadInput{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		Email:    req.Email,
		Origem:   req.Origem,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, lead)
}

// Get returns a single lead
func (h *LeadHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// List returns the leads visible to the caller
func (h *LeadHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	leads, total, err := h.leadService.ListLeads(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leads, total, filter.Page, filter.PageSize)
}

// ListUnclaimed returns leads still in the shared pool
func (h *LeadHandler) ListUnclaimed(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	leads, total, err := h.leadService.ListUnclaimedLeads(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, leads, total, filter.Page, filter.PageSize)
}

// Claim assigns an unowned lead to the caller. Exactly one of two
// concurrent claimers wins; the loser gets a conflict.
func (h *LeadHandler) Claim(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.ClaimLead(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}

// Transition applies a pipeline event to a lead
func (h *LeadHandler) Transition(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid lead ID format")
		return
	}

	var req TransitionLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.TransitionLead(c.Request.Context(), getSession(c), crmapp.TransitionLeadInput{
		LeadID: id,
		Event:  crm.LeadEvent(strings.ToUpper(req.Event)),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lead)
}
