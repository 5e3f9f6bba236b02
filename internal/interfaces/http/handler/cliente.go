package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/lojamae/backend/internal/application/crm"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/interfaces/http/dto"
)

// ClienteHandler handles customer record endpoints
type ClienteHandler struct {
	BaseHandler
	clienteService *crmapp.ClienteService
}

// NewClienteHandler creates a new ClienteHandler
func NewClienteHandler(clienteService *crmapp.ClienteService) *ClienteHandler {
	return &ClienteHandler{clienteService: clienteService}
}

// EnderecoRequest is the address block of a customer payload
type EnderecoRequest struct {
	CEP         string `json:"cep" binding:"max=9"`
	Estado      string `json:"estado" binding:"max=2"`
	Cidade      string `json:"cidade" binding:"max=100"`
	Bairro      string `json:"bairro" binding:"max=100"`
	Rua         string `json:"rua" binding:"max=200"`
	Numero      string `json:"numero" binding:"max=20"`
	Complemento string `json:"complemento" binding:"max=100"`
}

// CreateClienteRequest is the request body for registering a customer
type CreateClienteRequest struct {
	Nome        string           `json:"nome" binding:"required,min=2,max=200"`
	NomeSocial  string           `json:"nome_social" binding:"max=200"`
	Telefone    string           `json:"telefone" binding:"required,min=8,max=20"`
	Email       string           `json:"email" binding:"omitempty,email"`
	CPF         string           `json:"cpf" binding:"max=18"`
	Sexo        string           `json:"sexo" binding:"max=20"`
	Aniversario *time.Time       `json:"aniversario"`
	Endereco    *EnderecoRequest `json:"endereco"`
	Tipo        string           `json:"tipo" binding:"omitempty,oneof=PESSOA_FISICA PESSOA_JURIDICA"`
	OrigemLead  string           `json:"origem_lead" binding:"max=50"`
	InteresseEm []string         `json:"interesse_em"`
	Observacoes string           `json:"observacoes" binding:"max=2000"`
	LeadID      *string          `json:"lead_id" binding:"omitempty,uuid"`
}

// UpdateClienteRequest is a partial customer update
type UpdateClienteRequest struct {
	Telefone    *string          `json:"telefone" binding:"omitempty,min=8,max=20"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Endereco    *EnderecoRequest `json:"endereco"`
	InteresseEm []string         `json:"interesse_em"`
	Observacoes *string          `json:"observacoes" binding:"omitempty,max=2000"`
}

// AddFollowUpRequest is the request body for a follow-up note
type AddFollowUpRequest struct {
	Mensagem string `json:"mensagem" binding:"required,min=1,max=2000"`
}

func enderecoFromRequest(req *EnderecoRequest) crm.Endereco {
	if req == nil {
		return crm.Endereco{}
	}
	return crm.Endereco{
		CEP:         req.CEP,
		Estado:      req.Estado,
		Cidade:      req.Cidade,
		Bairro:      req.Bairro,
		Rua:         req.Rua,
		Numero:      req.Numero,
		Complemento: req.Complemento,
	}
}

// Create registers a new customer, optionally converting a lead
func (h *ClienteHandler) Create(c *gin.Context) {
	var req CreateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := crmapp.CreateClienteInput{
		Nome:        req.Nome,
		NomeSocial:  req.NomeSocial,
		Telefone:    req.Telefone,
		Email:       req.Email,
		CPF:         req.CPF,
		Sexo:        req.Sexo,
		Aniversario: req.Aniversario,
		Endereco:    enderecoFromRequest(req.Endereco),
		Tipo:        crm.TipoCliente(req.Tipo),
		OrigemLead:  req.OrigemLead,
		InteresseEm: req.InteresseEm,
		Observacoes: req.Observacoes,
	}
	if req.LeadID != nil {
		leadID, err := uuid.Parse(*req.LeadID)
		if err != nil {
			h.BadRequest(c, "Invalid lead ID format")
			return
		}
		input.LeadID = &leadID
	}

	cliente, err := h.clienteService.CreateCliente(c.Request.Context(), getSession(c), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, cliente)
}

// Get returns a single customer
func (h *ClienteHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	cliente, err := h.clienteService.GetCliente(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cliente)
}

// List returns a paginated customer list
func (h *ClienteHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := req.ToFilter()
	clientes, total, err := h.clienteService.ListClientes(c.Request.Context(), getSession(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, clientes, total, filter.Page, filter.PageSize)
}

// Update applies a partial update to a customer
func (h *ClienteHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req UpdateClienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := crmapp.UpdateClienteInput{
		Telefone:    req.Telefone,
		Email:       req.Email,
		InteresseEm: req.InteresseEm,
		Observacoes: req.Observacoes,
	}
	if req.Endereco != nil {
		endereco := enderecoFromRequest(req.Endereco)
		input.Endereco = &endereco
	}

	cliente, err := h.clienteService.UpdateCliente(c.Request.Context(), getSession(c), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cliente)
}

// AddFollowUp appends a follow-up note to a customer
func (h *ClienteHandler) AddFollowUp(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req AddFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	followUp, err := h.clienteService.AddFollowUp(c.Request.Context(), getSession(c), crmapp.AddFollowUpInput{
		ClienteID: id,
		Mensagem:  req.Mensagem,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, followUp)
}

// ListFollowUps returns the follow-up history of a customer
func (h *ClienteHandler) ListFollowUps(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	followUps, err := h.clienteService.ListFollowUps(c.Request.Context(), getSession(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, followUps)
}
