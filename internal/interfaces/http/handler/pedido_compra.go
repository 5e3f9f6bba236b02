package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	procurementapp "github.com/lojamae/backend/internal/application/procurement"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// PedidoCompraHandler handles purchase order endpoints
type PedidoCompraHandler struct {
	BaseHandler
	pedidoService *procurementapp.PedidoCompraService
}

// NewPedidoCompraHandler creates a new PedidoCompraHandler
func NewPedidoCompraHandler(pedidoService *procurementapp.PedidoCompraService) *PedidoCompraHandler {
	return &PedidoCompraHandler{pedidoService: pedidoService}
}

// ItemPedidoRequest describes one purchase order line
type ItemPedidoRequest struct {
	Descricao     string  `json:"descricao" binding:"required,max=500"`
	Quantidade    float64 `json:"quantidade" binding:"required,gt=0"`
	PrecoUnitario float64 `json:"preco_unitario" binding:"required,gt=0"`
}

// CreatePedidoRequest is the request body for opening a purchase order
type CreatePedidoRequest struct {
	FornecedorID string              `json:"fornecedor_id" binding:"required,uuid"`
	Observacoes  string              `json:"observacoes" binding:"max=2000"`
	Itens        []ItemPedidoRequest `json:"itens"`
}

func itemPedidoFromRequest(req ItemPedidoRequest) procurementapp.ItemPedidoCompraInput {
	return procurementapp.ItemPedidoCompraInput{
		Descricao:     req.Descricao,
		Quantidade:    decimal.NewFromFloat(req.Quantidade),
		PrecoUnitario: decimal.NewFromFloat(req.PrecoUnitario),
	}
}

// Create opens a draft purchase order for a supplier
func (h *PedidoCompraHandler) Create(c *gin.Context) {
	var req CreatePedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fornecedorID, err := uuid.Parse(req.FornecedorID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	input := procurementapp.CreatePedidoCompraInput{
		FornecedorID: fornecedorID,
		Observacoes:  req.Observacoes,
	}
	for _, item := range req.Itens {
		input.Itens = append(input.Itens, itemPedidoFromRequest(item))
	}

	pedido, err := h.pedidoService.CreatePedido(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, pedido)
}

// Get returns a single purchase order
func (h *PedidoCompraHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	pedido, err := h.pedidoService.GetPedido(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pedido)
}

// List returns purchase orders, optionally scoped to one supplier
func (h *PedidoCompraHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var fornecedorID *uuid.UUID
	if raw := c.Query("fornecedor_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		fornecedorID = &parsed
	}

	filter := req.ToFilter()
	pedidos, total, err := h.pedidoService.ListPedidos(c.Request.Context(), getSession(c), fornecedorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, pedidos, total, filter.Page, filter.PageSize)
}

// AddItem appends a line to a draft purchase order
func (h *PedidoCompraHandler) AddItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ItemPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pedido, err := h.pedidoService.AddItem(c.Request.Context(), getSession(c), procurementapp.AddItemPedidoInput{
		PedidoID:      id,
		Descricao:     req.Descricao,
		Quantidade:    decimal.NewFromFloat(req.Quantidade),
		PrecoUnitario: decimal.NewFromFloat(req.PrecoUnitario),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pedido)
}

// Enviar sends a draft order to the supplier
func (h *PedidoCompraHandler) Enviar(c *gin.Context) {
	h.transition(c, h.pedidoService.EnviarPedido)
}

// Receber records delivery of a sent order
func (h *PedidoCompraHandler) Receber(c *gin.Context) {
	h.transition(c, h.pedidoService.ReceberPedido)
}

// Cancelar calls off an order that was not received yet
func (h *PedidoCompraHandler) Cancelar(c *gin.Context) {
	h.transition(c, h.pedidoService.CancelarPedido)
}

func (h *PedidoCompraHandler) transition(
	c *gin.Context,
	op func(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.PedidoCompra, error),
) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	pedido, err := op(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pedido)
}
