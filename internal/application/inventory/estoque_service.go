package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/inventory"
	"github.com/lojamae/backend/internal/domain/shared"
)

// EstoqueService manages the product catalog and stock movements. Every
// quantity change is recorded as a MovimentoEstoque alongside the
// product update.
type EstoqueService struct {
	produtoRepo   inventory.ProdutoRepository
	movimentoRepo inventory.MovimentoRepository
	gate          *authz.Gate
	logger        *zap.Logger
}

// NewEstoqueService creates a new stock service
func NewEstoqueService(
	produtoRepo inventory.ProdutoRepository,
	movimentoRepo inventory.MovimentoRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *EstoqueService {
	return &EstoqueService{
		produtoRepo:   produtoRepo,
		movimentoRepo: movimentoRepo,
		gate:          gate,
		logger:        logger,
	}
}

// CreateProduto registers a product with zero stock. Codigo is unique.
func (s *EstoqueService) CreateProduto(ctx context.Context, session identity.Session, input CreateProdutoInput) (*inventory.Produto, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, err
	}

	if _, err := s.produtoRepo.FindByCodigo(ctx, input.Codigo); err == nil {
		return nil, shared.NewDomainError("CODIGO_TAKEN", "A produto with this codigo already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	produto, err := inventory.NewProduto(input.Codigo, input.Descricao, input.Categoria, input.Unidade)
	if err != nil {
		return nil, err
	}
	produto.EstoqueMinimo = input.EstoqueMinimo
	produto.PrecoCusto = input.PrecoCusto

	if err := s.produtoRepo.Save(ctx, produto); err != nil {
		return nil, err
	}
	return produto, nil
}

// GetProduto returns a single product
func (s *EstoqueService) GetProduto(ctx context.Context, session identity.Session, id uuid.UUID) (*inventory.Produto, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, err
	}
	return s.produtoRepo.FindByID(ctx, id)
}

// ListProdutos returns products matching the filter
func (s *EstoqueService) ListProdutos(ctx context.Context, session identity.Session, filter shared.Filter) ([]inventory.Produto, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, 0, err
	}
	return s.produtoRepo.FindAll(ctx, filter)
}

// UpdateProduto applies a partial update to catalog fields. Stock
// quantity only changes through movements.
func (s *EstoqueService) UpdateProduto(ctx context.Context, session identity.Session, id uuid.UUID, input UpdateProdutoInput) (*inventory.Produto, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, err
	}

	produto, err := s.produtoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Descricao != nil {
		if *input.Descricao == "" {
			return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Descricao cannot be empty")
		}
		produto.Descricao = *input.Descricao
	}
	if input.Categoria != nil {
		produto.Categoria = *input.Categoria
	}
	if input.EstoqueMinimo != nil {
		produto.EstoqueMinimo = *input.EstoqueMinimo
	}
	if input.PrecoCusto != nil {
		produto.PrecoCusto = *input.PrecoCusto
	}

	if err := s.produtoRepo.Save(ctx, produto); err != nil {
		return nil, err
	}
	return produto, nil
}

// RegistrarEntrada adds incoming stock
func (s *EstoqueService) RegistrarEntrada(ctx context.Context, session identity.Session, input MovimentoInput) (*inventory.Produto, error) {
	return s.movimentar(ctx, session, input, (*inventory.Produto).Entrada)
}

// RegistrarSaida removes outgoing stock. Stock never goes negative.
func (s *EstoqueService) RegistrarSaida(ctx context.Context, session identity.Session, input MovimentoInput) (*inventory.Produto, error) {
	return s.movimentar(ctx, session, input, (*inventory.Produto).Saida)
}

// AjustarEstoque sets the absolute quantity after a physical count
func (s *EstoqueService) AjustarEstoque(ctx context.Context, session identity.Session, input MovimentoInput) (*inventory.Produto, error) {
	return s.movimentar(ctx, session, input, (*inventory.Produto).Ajustar)
}

// ListMovimentos returns the movement history of a product
func (s *EstoqueService) ListMovimentos(ctx context.Context, session identity.Session, produtoID uuid.UUID, filter shared.Filter) ([]inventory.MovimentoEstoque, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, 0, err
	}
	if _, err := s.produtoRepo.FindByID(ctx, produtoID); err != nil {
		return nil, 0, err
	}
	return s.movimentoRepo.FindByProduto(ctx, produtoID, filter)
}

// ListAbaixoDoMinimo returns active products below their replenishment
// threshold
func (s *EstoqueService) ListAbaixoDoMinimo(ctx context.Context, session identity.Session) ([]inventory.Produto, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, err
	}
	return s.produtoRepo.FindAbaixoDoMinimo(ctx)
}

func (s *EstoqueService) movimentar(
	ctx context.Context,
	session identity.Session,
	input MovimentoInput,
	apply func(*inventory.Produto, decimal.Decimal, string, uuid.UUID) (*inventory.MovimentoEstoque, error),
) (*inventory.Produto, error) {
	if err := s.gate.Authorize(session, authz.ActionManageEstoque, nil); err != nil {
		return nil, err
	}

	produto, err := s.produtoRepo.FindByID(ctx, input.ProdutoID)
	if err != nil {
		return nil, err
	}
	movimento, err := apply(produto, input.Quantidade, input.Motivo, session.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.produtoRepo.Save(ctx, produto); err != nil {
		return nil, err
	}
	if err := s.movimentoRepo.Save(ctx, movimento); err != nil {
		// Quantity is committed; a missing history row is logged, not
		// surfaced as a failed movement.
		s.logger.Error("movimento record lost",
			zap.String("produto_id", produto.ID.String()),
			zap.String("tipo", string(movimento.Tipo)),
			zap.Error(err))
	}

	if produto.AbaixoDoMinimo() {
		s.logger.Warn("produto abaixo do estoque minimo",
			zap.String("produto_id", produto.ID.String()),
			zap.String("codigo", produto.Codigo),
			zap.String("quantidade", produto.Quantidade.String()),
			zap.String("estoque_minimo", produto.EstoqueMinimo.String()))
	}
	return produto, nil
}
