package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
)

// FornecedorService manages the supplier registry
type FornecedorService struct {
	fornecedorRepo procurement.FornecedorRepository
	gate           *authz.Gate
	logger         *zap.Logger
}

// NewFornecedorService creates a new supplier service
func NewFornecedorService(
	fornecedorRepo procurement.FornecedorRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *FornecedorService {
	return &FornecedorService{
		fornecedorRepo: fornecedorRepo,
		gate:           gate,
		logger:         logger,
	}
}

// CreateFornecedor registers a supplier. CNPJ is unique across the registry.
func (s *FornecedorService) CreateFornecedor(ctx context.Context, session identity.Session, input CreateFornecedorInput) (*procurement.Fornecedor, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFornecedores, nil); err != nil {
		return nil, err
	}

	fornecedor, err := procurement.NewFornecedor(input.RazaoSocial, input.CNPJ)
	if err != nil {
		return nil, err
	}
	if _, err := s.fornecedorRepo.FindByCNPJ(ctx, fornecedor.CNPJ); err == nil {
		return nil, shared.NewDomainError("CNPJ_TAKEN", "A fornecedor with this CNPJ is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fornecedor.NomeFantasia = input.NomeFantasia
	fornecedor.UpdateContato(input.Email, input.Telefone, input.Endereco)

	if err := s.fornecedorRepo.Save(ctx, fornecedor); err != nil {
		return nil, err
	}

	s.logger.Info("fornecedor created",
		zap.String("fornecedor_id", fornecedor.ID.String()),
		zap.String("cnpj", fornecedor.CNPJ))
	return fornecedor, nil
}

// GetFornecedor returns a single supplier
func (s *FornecedorService) GetFornecedor(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.Fornecedor, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFornecedores, nil); err != nil {
		return nil, err
	}
	return s.fornecedorRepo.FindByID(ctx, id)
}

// ListFornecedores returns suppliers matching the filter
func (s *FornecedorService) ListFornecedores(ctx context.Context, session identity.Session, filter shared.Filter) ([]procurement.Fornecedor, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFornecedores, nil); err != nil {
		return nil, 0, err
	}
	return s.fornecedorRepo.FindAll(ctx, filter)
}

// UpdateFornecedor applies a partial update to a supplier
func (s *FornecedorService) UpdateFornecedor(ctx context.Context, session identity.Session, id uuid.UUID, input UpdateFornecedorInput) (*procurement.Fornecedor, error) {
	if err := s.gate.Authorize(session, authz.ActionManageFornecedores, nil); err != nil {
		return nil, err
	}

	fornecedor, err := s.fornecedorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.NomeFantasia != nil {
		fornecedor.NomeFantasia = *input.NomeFantasia
	}
	var email, telefone, endereco string
	if input.Email != nil {
		email = *input.Email
	}
	if input.Telefone != nil {
		telefone = *input.Telefone
	}
	if input.Endereco != nil {
		endereco = *input.Endereco
	}
	fornecedor.UpdateContato(email, telefone, endereco)

	if err := s.fornecedorRepo.Save(ctx, fornecedor); err != nil {
		return nil, err
	}
	return fornecedor, nil
}

// DeactivateFornecedor marks a supplier as inactive. The record is kept
// because imported invoices may still reference it.
func (s *FornecedorService) DeactivateFornecedor(ctx context.Context, session identity.Session, id uuid.UUID) error {
	if err := s.gate.Authorize(session, authz.ActionManageFornecedores, nil); err != nil {
		return err
	}

	fornecedor, err := s.fornecedorRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	fornecedor.Deactivate()
	return s.fornecedorRepo.Save(ctx, fornecedor)
}
