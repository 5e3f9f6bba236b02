package crm

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// TipoCliente distinguishes individual and corporate customers
type TipoCliente string

const (
	TipoClientePessoaFisica   TipoCliente = "PESSOA_FISICA"
	TipoClientePessoaJuridica TipoCliente = "PESSOA_JURIDICA"
)

// IsValid checks if the customer type is valid
func (t TipoCliente) IsValid() bool {
	return t == TipoClientePessoaFisica || t == TipoClientePessoaJuridica
}

// Endereco holds the customer address
type Endereco struct {
	CEP         string
	Estado      string
	Cidade      string
	Bairro      string
	Rua         string
	Numero      string
	Complemento string
}

// Cliente represents a converted, identified customer record
type Cliente struct {
	shared.BaseAggregateRoot
	Nome        string
	NomeSocial  string
	Telefone    string
	Email       string
	CPF         string
	Sexo        string
	Aniversario *time.Time
	Endereco    Endereco
	Tipo        TipoCliente
	OrigemLead  string
	InteresseEm []string
	Observacoes string
}

// NewCliente creates a new customer record
func NewCliente(nome, telefone, email string, tipo TipoCliente) (*Cliente, error) {
	if nome == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Nome cannot be empty")
	}
	if telefone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Telefone cannot be empty")
	}
	if tipo == "" {
		tipo = TipoClientePessoaFisica
	}
	if !tipo.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown customer type")
	}

	return &Cliente{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Nome:              nome,
		Telefone:          telefone,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Tipo:              tipo,
	}, nil
}

// UpdateContato updates the contact fields
func (c *Cliente) UpdateContato(telefone, email string) error {
	if telefone == "" {
		return shared.NewDomainError("INVALID_PHONE", "Telefone cannot be empty")
	}
	c.Telefone = telefone
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Touch()
	return nil
}

// UpdateEndereco replaces the address
func (c *Cliente) UpdateEndereco(endereco Endereco) {
	c.Endereco = endereco
	c.Touch()
}

// FollowUp is a free-form note a user left on a customer record
type FollowUp struct {
	shared.BaseEntity
	ClienteID uuid.UUID
	UserID    uuid.UUID
	Mensagem  string
}

// NewFollowUp creates a new follow-up note
func NewFollowUp(clienteID, userID uuid.UUID, mensagem string) (*FollowUp, error) {
	if clienteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENTE", "Cliente ID cannot be empty")
	}
	if mensagem == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Mensagem cannot be empty")
	}
	return &FollowUp{
		BaseEntity: shared.NewBaseEntity(),
		ClienteID:  clienteID,
		UserID:     userID,
		Mensagem:   mensagem,
	}, nil
}
