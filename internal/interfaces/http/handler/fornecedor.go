package handler

import (
	"github.com/gin-gonic/gin"

	procurementapp "github.com/lojamae/backend/internal/application/procurement"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// FornecedorHandler handles supplier endpoints
type FornecedorHandler struct {
	BaseHandler
	fornecedorService *procurementapp.FornecedorService
}

// NewFornecedorHandler creates a new FornecedorHandler
func NewFornecedorHandler(fornecedorService *procurementapp.FornecedorService) *FornecedorHandler {
	return &FornecedorHandler{fornecedorService: fornecedorService}
}

// CreateFornecedorRequest is the request body for registering a supplier
type CreateFornecedorRequest struct {
	RazaoSocial  string `json:"razao_social" binding:"required,min=2,max=200"`
	NomeFantasia string `json:"nome_fantasia" binding:"max=200"`
	CNPJ         string `json:"cnpj" binding:"required,min=14,max=18"`
	Telefone     string `json:"telefone" binding:"max=20"`
	Email        string `json:"email" binding:"omitempty,email"`
}

// UpdateFornecedorRequest is a partial supplier update
type UpdateFornecedorRequest struct {
	NomeFantasia *string `json:"nome_fantasia" binding:"omitempty,max=200"`
	Telefone     *string `json:"telefone" binding:"omitempty,max=20"`
	Email        *string `json:"email" binding:"omitempty,email"`
}

// Create registers a new supplier
func (h *FornecedorHandler) Create(c *gin.Context) {
	var req CreateFornecedorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fornecedor, err := h.fornecedorService.CreateFornecedor(c.Request.Context(), getSession(c), procurementapp.CreateFornecedorInput{
		RazaoSocial:  req.RazaoSocial,
		NomeFantasia: req.NomeFantasia,
		CNPJ:         req.CNPJ,
		Telefone:     req.Telefone,
		Email:        req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, fornecedor)
}

// Get returns a single supplier
func (h *FornecedorHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	fornecedor, err := h.fornecedorService.GetFornecedor(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fornecedor)
}

// List returns a paginated supplier list
func (h *FornecedorHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	fornecedores, total, err := h.fornecedorService.ListFornecedores(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, fornecedores, total, filter.Page, filter.PageSize)
}

// Update applies a partial update to a supplier
func (h *FornecedorHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req UpdateFornecedorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	fornecedor, err := h.fornecedorService.UpdateFornecedor(c.Request.Context(), getSession(c), id, procurementapp.UpdateFornecedorInput{
		NomeFantasia: req.NomeFantasia,
		Telefone:     req.Telefone,
		Email:        req.Email,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, fornecedor)
}

// Deactivate disables a supplier. The record is kept because imported
// invoices may still reference it.
func (h *FornecedorHandler) Deactivate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	if err := h.fornecedorService.DeactivateFornecedor(c.Request.Context(), getSession(c), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
