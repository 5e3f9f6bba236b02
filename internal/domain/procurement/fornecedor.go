package procurement

import (
	"strings"

	"github.com/lojamae/backend/internal/domain/shared"
)

// Fornecedor represents a supplier aggregate root
type Fornecedor struct {
	shared.BaseAggregateRoot
	RazaoSocial  string
	NomeFantasia string
	CNPJ         string
	Email        string
	Telefone     string
	Endereco     string
	Active       bool
}

// NewFornecedor creates a new supplier
func NewFornecedor(razaoSocial, cnpj string) (*Fornecedor, error) {
	if razaoSocial == "" {
		return nil, shared.NewDomainError("INVALID_RAZAO_SOCIAL", "Razao social cannot be empty")
	}
	cnpj = normalizeCNPJ(cnpj)
	if len(cnpj) != 14 {
		return nil, shared.NewDomainError("INVALID_CNPJ", "CNPJ must have 14 digits")
	}

	return &Fornecedor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RazaoSocial:       razaoSocial,
		CNPJ:              cnpj,
		Active:            true,
	}, nil
}

// UpdateContato updates contact information
func (f *Fornecedor) UpdateContato(email, telefone, endereco string) {
	if email != "" {
		f.Email = email
	}
	if telefone != "" {
		f.Telefone = telefone
	}
	if endereco != "" {
		f.Endereco = endereco
	}
	f.Touch()
}

// Deactivate marks the supplier as inactive
func (f *Fornecedor) Deactivate() {
	f.Active = false
	f.Touch()
}

// normalizeCNPJ strips formatting characters, keeping digits only
func normalizeCNPJ(cnpj string) string {
	var b strings.Builder
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
