package handler

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	financeapp "github.com/lojamae/backend/internal/application/finance"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// ContaHandler handles contas a pagar/receber endpoints
type ContaHandler struct {
	BaseHandler
	contaService *financeapp.ContaService
}

// NewContaHandler creates a new ContaHandler
func NewContaHandler(contaService *financeapp.ContaService) *ContaHandler {
	return &ContaHandler{contaService: contaService}
}

// CreateContaRequest is the request body for a manual financial entry
type CreateContaRequest struct {
	Tipo       string    `json:"tipo" binding:"required,oneof=PAGAR RECEBER"`
	Descricao  string    `json:"descricao" binding:"required,min=1,max=500"`
	Valor      float64   `json:"valor" binding:"required,gt=0"`
	Vencimento time.Time `json:"vencimento" binding:"required"`
}

// MarcarVencidasRequest optionally pins the sweep's reference date
type MarcarVencidasRequest struct {
	Referencia *time.Time `json:"referencia"`
}

// Create opens a manual financial entry
func (h *ContaHandler) Create(c *gin.Context) {
	var req CreateContaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	conta, err := h.contaService.CreateConta(c.Request.Context(), getSession(c), financeapp.CreateContaInput{
		Tipo:       finance.TipoConta(req.Tipo),
		Descricao:  req.Descricao,
		Valor:      decimal.NewFromFloat(req.Valor),
		Vencimento: req.Vencimento,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, conta)
}

// Get returns a single entry
func (h *ContaHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	conta, err := h.contaService.GetConta(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, conta)
}

// List returns entries of one tipo (PAGAR or RECEBER)
func (h *ContaHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tipo := finance.TipoConta(strings.ToUpper(c.Query("tipo")))
	filter := req.ToFilter()
	contas, total, err := h.contaService.ListContas(c.Request.Context(), getSession(c), tipo, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, contas, total, filter.Page, filter.PageSize)
}

// ListByOrigem returns the entries generated by one source document,
// e.g. the installments of an imported invoice
func (h *ContaHandler) ListByOrigem(c *gin.Context) {
	origem := finance.OrigemConta(strings.ToUpper(c.Param("origem")))
	origemID, err := uuid.Parse(c.Param("origemId"))
	if err != nil {
		h.BadRequest(c, "Invalid source ID format")
		return
	}

	contas, err := h.contaService.ListContasPorOrigem(c.Request.Context(), getSession(c), origem, origemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, contas)
}

// Pagar settles an entry
func (h *ContaHandler) Pagar(c *gin.Context) {
	h.transition(c, h.contaService.PagarConta)
}

// Cancelar voids an entry
func (h *ContaHandler) Cancelar(c *gin.Context) {
	h.transition(c, h.contaService.CancelarConta)
}

func (h *ContaHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, session identity.Session, id uuid.UUID) (*finance.Conta, error),
) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid entry ID format")
		return
	}

	conta, err := op(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, conta)
}

// MarcarVencidas sweeps pending entries past their due date
func (h *ContaHandler) MarcarVencidas(c *gin.Context) {
	var req MarcarVencidasRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	ref := time.Now()
	if req.Referencia != nil {
		ref = *req.Referencia
	}

	result, err := h.contaService.MarcarVencidas(c.Request.Context(), getSession(c), ref)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
