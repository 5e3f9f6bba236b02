package procurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/nfe"
)

// NFeImportService imports supplier invoice XMLs. A successful import
// stores the invoice, links (or registers) the emitting supplier by
// CNPJ, and opens one conta a pagar per installment. Invoice and contas
// are committed together: a failed installment rolls the import back.
type NFeImportService struct {
	nfeRepo        procurement.NFeRepository
	fornecedorRepo procurement.FornecedorRepository
	parser         *nfe.Parser
	gate           *authz.Gate
	logger         *zap.Logger
}

// NewNFeImportService creates a new invoice import service
func NewNFeImportService(
	nfeRepo procurement.NFeRepository,
	fornecedorRepo procurement.FornecedorRepository,
	parser *nfe.Parser,
	gate *authz.Gate,
	logger *zap.Logger,
) *NFeImportService {
	return &NFeImportService{
		nfeRepo:        nfeRepo,
		fornecedorRepo: fornecedorRepo,
		parser:         parser,
		gate:           gate,
		logger:         logger,
	}
}

// ImportNFe parses and stores an invoice XML. The chave de acesso is the
// idempotency key: importing the same invoice twice is rejected before
// anything is written.
func (s *NFeImportService) ImportNFe(ctx context.Context, session identity.Session, input ImportNFeInput) (*ImportNFeResult, error) {
	if err := s.gate.Authorize(session, authz.ActionImportNFe, nil); err != nil {
		return nil, err
	}

	invoice, err := s.parser.Parse(input.XML, session.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.nfeRepo.FindByChaveAcesso(ctx, invoice.ChaveAcesso); err == nil {
		return nil, shared.NewDomainError("NFE_ALREADY_IMPORTED",
			fmt.Sprintf("NFe %s has already been imported", invoice.ChaveAcesso))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fornecedor, created, err := s.resolveFornecedor(ctx, invoice)
	if err != nil {
		return nil, err
	}
	invoice.VincularFornecedor(fornecedor.ID)

	contas, err := s.buildContas(invoice, fornecedor)
	if err != nil {
		return nil, err
	}
	if err := s.nfeRepo.SaveWithContas(ctx, invoice, contas); err != nil {
		return nil, err
	}

	s.logger.Info("nfe imported",
		zap.String("chave_acesso", invoice.ChaveAcesso),
		zap.String("fornecedor_id", fornecedor.ID.String()),
		zap.Bool("fornecedor_novo", created),
		zap.Int("contas_geradas", len(contas)))

	return &ImportNFeResult{
		NFeID:          invoice.ID,
		ChaveAcesso:    invoice.ChaveAcesso,
		FornecedorID:   invoice.FornecedorID,
		FornecedorNovo: created,
		ContasGeradas:  len(contas),
		ValorTotal:     invoice.ValorTotal.StringFixed(2),
	}, nil
}

// GetNFe returns a single imported invoice
func (s *NFeImportService) GetNFe(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.NFe, error) {
	if err := s.gate.Authorize(session, authz.ActionImportNFe, nil); err != nil {
		return nil, err
	}
	return s.nfeRepo.FindByID(ctx, id)
}

// ListNFes returns imported invoices matching the filter
func (s *NFeImportService) ListNFes(ctx context.Context, session identity.Session, filter shared.Filter) ([]procurement.NFe, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionImportNFe, nil); err != nil {
		return nil, 0, err
	}
	return s.nfeRepo.FindAll(ctx, filter)
}

// resolveFornecedor finds the supplier by the emitting CNPJ, registering
// it from the invoice header when the CNPJ is unknown.
func (s *NFeImportService) resolveFornecedor(ctx context.Context, invoice *procurement.NFe) (*procurement.Fornecedor, bool, error) {
	fornecedor, err := s.fornecedorRepo.FindByCNPJ(ctx, invoice.EmitenteCNPJ)
	if err == nil {
		return fornecedor, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	fornecedor, err = procurement.NewFornecedor(invoice.EmitenteNome, invoice.EmitenteCNPJ)
	if err != nil {
		return nil, false, err
	}
	if err := s.fornecedorRepo.Save(ctx, fornecedor); err != nil {
		return nil, false, err
	}
	return fornecedor, true, nil
}

// buildContas derives one conta a pagar per installment. The contas are
// persisted together with the invoice, not here.
func (s *NFeImportService) buildContas(invoice *procurement.NFe, fornecedor *procurement.Fornecedor) ([]*finance.Conta, error) {
	origemID := invoice.ID
	contas := make([]*finance.Conta, 0, len(invoice.Parcelas()))
	for _, parcela := range invoice.Parcelas() {
		descricao := fmt.Sprintf("NFe %s/%s %s - parcela %s",
			invoice.Numero, invoice.Serie, fornecedor.RazaoSocial, parcela.Numero)
		conta, err := finance.NewConta(finance.ContaPagar, descricao, parcela.Valor,
			parcela.Vencimento, finance.OrigemNFe, &origemID)
		if err != nil {
			return nil, err
		}
		contas = append(contas, conta)
	}
	return contas, nil
}
