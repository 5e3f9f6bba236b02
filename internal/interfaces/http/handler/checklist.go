package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/lojamae/backend/internal/application/sales"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// ChecklistHandler handles installation checklist endpoints
type ChecklistHandler struct {
	BaseHandler
	checklistService *salesapp.ChecklistService
}

// NewChecklistHandler creates a new ChecklistHandler
func NewChecklistHandler(checklistService *salesapp.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklistService: checklistService}
}

// CreateChecklistRequest is the request body for opening a checklist
type CreateChecklistRequest struct {
	OrcamentoID string `json:"orcamento_id" binding:"required,uuid"`
}

// AgendarChecklistRequest is the request body for scheduling installation
type AgendarChecklistRequest struct {
	InstaladorID string    `json:"instalador_id" binding:"required,uuid"`
	Data         time.Time `json:"data" binding:"required"`
}

// ConferirItemRequest is the request body for checking off one item
type ConferirItemRequest struct {
	ItemID     string `json:"item_id" binding:"required,uuid"`
	Observacao string `json:"observacao" binding:"max=2000"`
}

// Create opens an installation checklist from a won budget
func (h *ChecklistHandler) Create(c *gin.Context) {
	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orcamentoID, err := uuid.Parse(req.OrcamentoID)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	checklist, err := h.checklistService.CreateChecklist(c.Request.Context(), getSession(c), salesapp.CreateChecklistInput{
		OrcamentoID: orcamentoID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, checklist)
}

// Agendar assigns an installer and a date to a checklist
func (h *ChecklistHandler) Agendar(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid checklist ID format")
		return
	}

	var req AgendarChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	instaladorID, err := uuid.Parse(req.InstaladorID)
	if err != nil {
		h.BadRequest(c, "Invalid installer ID format")
		return
	}

	checklist, err := h.checklistService.AgendarInstalacao(c.Request.Context(), getSession(c), salesapp.AgendarChecklistInput{
		ChecklistID:  id,
		InstaladorID: instaladorID,
		Data:         req.Data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, checklist)
}

// ConferirItem checks off one item of the checklist. Only the assigned
// installer or an admin may do this.
func (h *ChecklistHandler) ConferirItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid checklist ID format")
		return
	}

	var req ConferirItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	checklist, err := h.checklistService.ConferirItem(c.Request.Context(), getSession(c), salesapp.ConferirItemInput{
		ChecklistID: id,
		ItemID:      itemID,
		Observacao:  req.Observacao,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, checklist)
}

// Get returns a single checklist
func (h *ChecklistHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid checklist ID format")
		return
	}

	checklist, err := h.checklistService.GetChecklist(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, checklist)
}

// ListMinhas returns the checklists assigned to the calling installer
func (h *ChecklistHandler) ListMinhas(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	checklists, total, err := h.checklistService.ListMinhasInstalacoes(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, checklists, total, filter.Page, filter.PageSize)
}
