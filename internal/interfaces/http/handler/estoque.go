package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/lojamae/backend/internal/application/inventory"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/inventory"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// EstoqueHandler handles product and stock movement endpoints
type EstoqueHandler struct {
	BaseHandler
	estoqueService *inventoryapp.EstoqueService
}

// NewEstoqueHandler creates a new EstoqueHandler
func NewEstoqueHandler(estoqueService *inventoryapp.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{estoqueService: estoqueService}
}

// CreateProdutoRequest is the request body for registering a product
type CreateProdutoRequest struct {
	Codigo        string  `json:"codigo" binding:"required,min=1,max=50"`
	Descricao     string  `json:"descricao" binding:"required,min=2,max=200"`
	Categoria     string  `json:"categoria" binding:"max=100"`
	Unidade       string  `json:"unidade" binding:"max=10"`
	EstoqueMinimo float64 `json:"estoque_minimo" binding:"min=0"`
	PrecoCusto    float64 `json:"preco_custo" binding:"min=0"`
}

// UpdateProdutoRequest is a partial product update. Stock quantity only
// changes through movements.
type UpdateProdutoRequest struct {
	Descricao     *string  `json:"descricao" binding:"omitempty,min=2,max=200"`
	Categoria     *string  `json:"categoria" binding:"omitempty,max=100"`
	EstoqueMinimo *float64 `json:"estoque_minimo" binding:"omitempty,min=0"`
	PrecoCusto    *float64 `json:"preco_custo" binding:"omitempty,min=0"`
}

// MovimentoRequest is the request body for a stock movement. For
// entrada and saida the quantity is the delta; for ajuste it is the
// counted total.
type MovimentoRequest struct {
	Quantidade float64 `json:"quantidade" binding:"required,min=0"`
	Motivo     string  `json:"motivo" binding:"max=500"`
}

// CreateProduto registers a new product
func (h *EstoqueHandler) CreateProduto(c *gin.Context) {
	var req CreateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	produto, err := h.estoqueService.CreateProduto(c.Request.Context(), getSession(c), inventoryapp.CreateProdutoInput{
		Codigo:        req.Codigo,
		Descricao:     req.Descricao,
		Categoria:     req.Categoria,
		Unidade:       req.Unidade,
		EstoqueMinimo: decimal.NewFromFloat(req.EstoqueMinimo),
		PrecoCusto:    decimal.NewFromFloat(req.PrecoCusto),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, produto)
}

// GetProduto returns a single product
func (h *EstoqueHandler) GetProduto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	produto, err := h.estoqueService.GetProduto(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, produto)
}

// ListProdutos returns a paginated product list
func (h *EstoqueHandler) ListProdutos(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	produtos, total, err := h.estoqueService.ListProdutos(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, produtos, total, filter.Page, filter.PageSize)
}

// UpdateProduto applies a partial update to a product
func (h *EstoqueHandler) UpdateProduto(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProdutoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := inventoryapp.UpdateProdutoInput{
		Descricao: req.Descricao,
		Categoria: req.Categoria,
	}
	if req.EstoqueMinimo != nil {
		minimo := decimal.NewFromFloat(*req.EstoqueMinimo)
		input.EstoqueMinimo = &minimo
	}
	if req.PrecoCusto != nil {
		custo := decimal.NewFromFloat(*req.PrecoCusto)
		input.PrecoCusto = &custo
	}

	produto, err := h.estoqueService.UpdateProduto(c.Request.Context(), getSession(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, produto)
}

// Entrada records received stock
func (h *EstoqueHandler) Entrada(c *gin.Context) {
	h.movimento(c, h.estoqueService.RegistrarEntrada)
}

// Saida records stock leaving for an installation or sale
func (h *EstoqueHandler) Saida(c *gin.Context) {
	h.movimento(c, h.estoqueService.RegistrarSaida)
}

// Ajuste corrects the quantity after a physical count
func (h *EstoqueHandler) Ajuste(c *gin.Context) {
	h.movimento(c, h.estoqueService.AjustarEstoque)
}

func (h *EstoqueHandler) movimento(
	c *gin.Context,
	op func(ctx context.Context, session identity.Session, input inventoryapp.MovimentoInput) (*inventory.Produto, error),
) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req MovimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	produto, err := op(c.Request.Context(), getSession(c), inventoryapp.MovimentoInput{
		ProdutoID:  id,
		Quantidade: decimal.NewFromFloat(req.Quantidade),
		Motivo:     req.Motivo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, produto)
}

// ListMovimentos returns the movement history of a product
func (h *EstoqueHandler) ListMovimentos(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	movimentos, total, err := h.estoqueService.ListMovimentos(c.Request.Context(), getSession(c), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movimentos, total, filter.Page, filter.PageSize)
}

// ListAbaixoDoMinimo returns products below their minimum stock level
func (h *EstoqueHandler) ListAbaixoDoMinimo(c *gin.Context) {
	produtos, err := h.estoqueService.ListAbaixoDoMinimo(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, produtos)
}
