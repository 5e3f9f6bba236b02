package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	salesapp "github.com/lojamae/backend/internal/application/sales"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/sales"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// OrcamentoHandler handles budget lifecycle endpoints
type OrcamentoHandler struct {
	BaseHandler
	orcamentoService *salesapp.OrcamentoService
}

// NewOrcamentoHandler creates a new OrcamentoHandler
func NewOrcamentoHandler(orcamentoService *salesapp.OrcamentoService) *OrcamentoHandler {
	return &OrcamentoHandler{orcamentoService: orcamentoService}
}

// ItemRequest describes one budget line. Dimensions are in meters;
// zero dimensions mean a per-unit product.
type ItemRequest struct {
	TipoProduto   string  `json:"tipo_produto" binding:"required,max=50"`
	Descricao     string  `json:"descricao" binding:"required,max=500"`
	Largura       float64 `json:"largura" binding:"min=0"`
	Altura        float64 `json:"altura" binding:"min=0"`
	PrecoUnitario float64 `json:"preco_unitario" binding:"required,gt=0"`
}

// CreateOrcamentoRequest is the request body for opening a budget
type CreateOrcamentoRequest struct {
	ClienteID   string        `json:"cliente_id" binding:"required,uuid"`
	Observacoes string        `json:"observacoes" binding:"max=2000"`
	Itens       []ItemRequest `json:"itens"`
}

// ApplyDescontoRequest carries the requested discount percentage
type ApplyDescontoRequest struct {
	Percentual float64 `json:"percentual" binding:"required,gt=0,max=100"`
}

// TransitionOrcamentoRequest carries the lifecycle event to apply
type TransitionOrcamentoRequest struct {
	Event  string `json:"event" binding:"required"`
	Motivo string `json:"motivo" binding:"max=500"`
}

func itemFromRequest(req ItemRequest) salesapp.ItemInput {
	return salesapp.ItemInput{
		TipoProduto:   req.TipoProduto,
		Descricao:     req.Descricao,
		Largura:       decimal.NewFromFloat(req.Largura),
		Altura:        decimal.NewFromFloat(req.Altura),
		PrecoUnitario: decimal.NewFromFloat(req.PrecoUnitario),
	}
}

// Create opens a budget for a customer
func (h *OrcamentoHandler) Create(c *gin.Context) {
	var req CreateOrcamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	input := salesapp.CreateOrcamentoInput{
		ClienteID:   clienteID,
		Observacoes: req.Observacoes,
	}
	for _, item := range req.Itens {
		input.Itens = append(input.Itens, itemFromRequest(item))
	}

	orcamento, err := h.orcamentoService.CreateOrcamento(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, orcamento)
}

// Get returns a single budget
func (h *OrcamentoHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	orcamento, err := h.orcamentoService.GetOrcamento(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orcamento)
}

// List returns the budgets visible to the caller
func (h *OrcamentoHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	orcamentos, total, err := h.orcamentoService.ListOrcamentos(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orcamentos, total, filter.Page, filter.PageSize)
}

// AddItem appends a line to a draft budget
func (h *OrcamentoHandler) AddItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orcamento, err := h.orcamentoService.AddItem(c.Request.Context(), getSession(c), salesapp.AddItemInput{
		OrcamentoID: id,
		Item:        itemFromRequest(req),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orcamento)
}

// RemoveItem removes a line from a draft budget
func (h *OrcamentoHandler) RemoveItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	orcamento, err := h.orcamentoService.RemoveItem(c.Request.Context(), getSession(c), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orcamento)
}

// ApplyDesconto requests a discount on a budget. Above the seller
// threshold the request is parked for approval instead of applied.
func (h *OrcamentoHandler) ApplyDesconto(c *gin.Context) {
	h.desconto(c, h.orcamentoService.ApplyDesconto)
}

// ApproveDesconto applies a discount that exceeded the seller threshold
func (h *OrcamentoHandler) ApproveDesconto(c *gin.Context) {
	h.desconto(c, h.orcamentoService.ApproveDesconto)
}

func (h *OrcamentoHandler) desconto(
	c *gin.Context,
	op func(ctx context.Context, session identity.Session, input salesapp.ApplyDescontoInput) (*salesapp.ApplyDescontoResult, error),
) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req ApplyDescontoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := op(c.Request.Context(), getSession(c), salesapp.ApplyDescontoInput{
		OrcamentoID: id,
		Percentual:  decimal.NewFromFloat(req.Percentual),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Transition applies a lifecycle event to a budget
func (h *OrcamentoHandler) Transition(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid budget ID format")
		return
	}

	var req TransitionOrcamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orcamento, err := h.orcamentoService.TransitionOrcamento(c.Request.Context(), getSession(c), salesapp.TransitionOrcamentoInput{
		OrcamentoID: id,
		Event:       sales.OrcamentoEvent(strings.ToUpper(req.Event)),
		Motivo:      req.Motivo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orcamento)
}
