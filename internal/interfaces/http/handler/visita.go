package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/lojamae/backend/internal/application/crm"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// VisitaHandler handles technical visit endpoints
type VisitaHandler struct {
	BaseHandler
	visitaService *crmapp.VisitaService
}

// NewVisitaHandler creates a new VisitaHandler
func NewVisitaHandler(visitaService *crmapp.VisitaService) *VisitaHandler {
	return &VisitaHandler{visitaService: visitaService}
}

// ScheduleVisitaRequest is the request body for scheduling a visit
type ScheduleVisitaRequest struct {
	ClienteID  string    `json:"cliente_id" binding:"required,uuid"`
	DataHora   time.Time `json:"data_hora" binding:"required"`
	TipoVisita string    `json:"tipo_visita" binding:"max=50"`
}

// FinalizeVisitaRequest is the request body for closing out a visit
type FinalizeVisitaRequest struct {
	Observacao string `json:"observacao" binding:"max=2000"`
}

// Schedule books a technical visit for a customer
func (h *VisitaHandler) Schedule(c *gin.Context) {
	var req ScheduleVisitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	visita, err := h.visitaService.ScheduleVisita(c.Request.Context(), getSession(c), crmapp.ScheduleVisitaInput{
		ClienteID:  clienteID,
		DataHora:   req.DataHora,
		TipoVisita: req.TipoVisita,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, visita)
}

// Finalize records the outcome of a visit
func (h *VisitaHandler) Finalize(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	var req FinalizeVisitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	visita, err := h.visitaService.FinalizeVisita(c.Request.Context(), getSession(c), crmapp.FinalizeVisitaInput{
		VisitaID:   id,
		Observacao: req.Observacao,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visita)
}

// Cancel calls off a scheduled visit
func (h *VisitaHandler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid visit ID format")
		return
	}

	visita, err := h.visitaService.CancelVisita(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, visita)
}

// ListByCliente returns the visit history of a customer
func (h *VisitaHandler) ListByCliente(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	visitas, total, err := h.visitaService.ListVisitasByCliente(c.Request.Context(), getSession(c), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, visitas, total, filter.Page, filter.PageSize)
}

// ListMinhas returns the caller's own scheduled visits
func (h *VisitaHandler) ListMinhas(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	visitas, total, err := h.visitaService.ListMinhasVisitas(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, visitas, total, filter.Page, filter.PageSize)
}
