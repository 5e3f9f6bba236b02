package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/lojamae/backend/internal/application/sales"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// OrdemProducaoHandler handles production order endpoints
type OrdemProducaoHandler struct {
	BaseHandler
	ordemService *salesapp.OrdemProducaoService
}

// NewOrdemProducaoHandler creates a new OrdemProducaoHandler
func NewOrdemProducaoHandler(ordemService *salesapp.OrdemProducaoService) *OrdemProducaoHandler {
	return &OrdemProducaoHandler{ordemService: ordemService}
}

// CreateOrdemRequest is the request body for opening a production order
type CreateOrdemRequest struct {
	OrcamentoID string `json:"orcamento_id" binding:"required,uuid"`
	Descricao   string `json:"descricao" binding:"max=2000"`
}

// CancelOrdemRequest is the request body for cancelling an order
type CancelOrdemRequest struct {
	Motivo string `json:"motivo" binding:"required,min=1,max=500"`
}

// Create opens a production order from a won budget
func (h *OrdemProducaoHandler) Create(c *gin.Context) {
	var req CreateOrdemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orcamentoID, err := uuid.Parse(req.OrcamentoID)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	ordem, err := h.ordemService.CreateOrdem(c.Request.Context(), getSession(c), salesapp.CreateOrdemProducaoInput{
		OrcamentoID: orcamentoID,
		Descricao:   req.Descricao,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ordem)
}

// Iniciar moves an order to production
func (h *OrdemProducaoHandler) Iniciar(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ordem, err := h.ordemService.IniciarOrdem(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ordem)
}

// Concluir marks an order as finished
func (h *OrdemProducaoHandler) Concluir(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	ordem, err := h.ordemService.ConcluirOrdem(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ordem)
}

// Cancelar calls off an order with a reason
func (h *OrdemProducaoHandler) Cancelar(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req CancelOrdemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ordem, err := h.ordemService.CancelarOrdem(c.Request.Context(), getSession(c), salesapp.CancelOrdemProducaoInput{
		OrdemID: id,
		Motivo:  req.Motivo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ordem)
}

// List returns a paginated list of production orders
func (h *OrdemProducaoHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	ordens, total, err := h.ordemService.ListOrdens(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, ordens, total, filter.Page, filter.PageSize)
}
