package procurement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
)

// PedidoCompraService manages purchase orders through their lifecycle:
// RASCUNHO -> ENVIADO -> RECEBIDO, with cancellation at any non-terminal
// point.
type PedidoCompraService struct {
	pedidoRepo     procurement.PedidoCompraRepository
	fornecedorRepo procurement.FornecedorRepository
	gate           *authz.Gate
	logger         *zap.Logger
}

// NewPedidoCompraService creates a new purchase order service
func NewPedidoCompraService(
	pedidoRepo procurement.PedidoCompraRepository,
	fornecedorRepo procurement.FornecedorRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *PedidoCompraService {
	return &PedidoCompraService{
		pedidoRepo:     pedidoRepo,
		fornecedorRepo: fornecedorRepo,
		gate:           gate,
		logger:         logger,
	}
}

// CreatePedido opens a draft purchase order against an active supplier
func (s *PedidoCompraService) CreatePedido(ctx context.Context, session identity.Session, input CreatePedidoCompraInput) (*procurement.PedidoCompra, error) {
	if err := s.gate.Authorize(session, authz.ActionManagePedidosCompra, nil); err != nil {
		return nil, err
	}

	fornecedor, err := s.fornecedorRepo.FindByID(ctx, input.FornecedorID)
	if err != nil {
		return nil, err
	}
	if !fornecedor.Active {
		return nil, shared.NewDomainError("FORNECEDOR_INACTIVE", "Cannot order from a deactivated fornecedor")
	}

	pedido, err := procurement.NewPedidoCompra(input.FornecedorID, session.UserID)
	if err != nil {
		return nil, err
	}
	pedido.Observacoes = input.Observacoes
	for _, item := range input.Itens {
		if err := pedido.AddItem(item.Descricao, item.Quantidade, item.PrecoUnitario); err != nil {
			return nil, err
		}
	}

	if err := s.pedidoRepo.Save(ctx, pedido); err != nil {
		return nil, err
	}
	return pedido, nil
}

// GetPedido returns a single purchase order
func (s *PedidoCompraService) GetPedido(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.PedidoCompra, error) {
	if err := s.gate.Authorize(session, authz.ActionManagePedidosCompra, nil); err != nil {
		return nil, err
	}
	return s.pedidoRepo.FindByID(ctx, id)
}

// ListPedidos returns purchase orders, optionally scoped to one supplier
func (s *PedidoCompraService) ListPedidos(ctx context.Context, session identity.Session, fornecedorID *uuid.UUID, filter shared.Filter) ([]procurement.PedidoCompra, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManagePedidosCompra, nil); err != nil {
		return nil, 0, err
	}
	if fornecedorID != nil {
		return s.pedidoRepo.FindByFornecedor(ctx, *fornecedorID, filter)
	}
	return s.pedidoRepo.FindAll(ctx, filter)
}

// AddItem appends a line to a draft purchase order
func (s *PedidoCompraService) AddItem(ctx context.Context, session identity.Session, input AddItemPedidoInput) (*procurement.PedidoCompra, error) {
	if err := s.gate.Authorize(session, authz.ActionManagePedidosCompra, nil); err != nil {
		return nil, err
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, input.PedidoID)
	if err != nil {
		return nil, err
	}
	if err := pedido.AddItem(input.Descricao, input.Quantidade, input.PrecoUnitario); err != nil {
		return nil, err
	}
	if err := s.pedidoRepo.Save(ctx, pedido); err != nil {
		return nil, err
	}
	return pedido, nil
}

// EnviarPedido submits the order to the supplier
func (s *PedidoCompraService) EnviarPedido(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.PedidoCompra, error) {
	return s.transition(ctx, session, id, (*procurement.PedidoCompra).Enviar)
}

// ReceberPedido marks the goods as received
func (s *PedidoCompraService) ReceberPedido(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.PedidoCompra, error) {
	return s.transition(ctx, session, id, (*procurement.PedidoCompra).Receber)
}

// CancelarPedido cancels an unreceived order
func (s *PedidoCompraService) CancelarPedido(ctx context.Context, session identity.Session, id uuid.UUID) (*procurement.PedidoCompra, error) {
	return s.transition(ctx, session, id, (*procurement.PedidoCompra).Cancelar)
}

// transition applies a lifecycle mutation and persists it under a
// compare-and-set on the loaded status, so two concurrent transitions
// cannot both win.
func (s *PedidoCompraService) transition(ctx context.Context, session identity.Session, id uuid.UUID, apply func(*procurement.PedidoCompra) error) (*procurement.PedidoCompra, error) {
	if err := s.gate.Authorize(session, authz.ActionManagePedidosCompra, nil); err != nil {
		return nil, err
	}

	pedido, err := s.pedidoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := pedido.Status
	if err := apply(pedido); err != nil {
		return nil, err
	}
	if err := s.pedidoRepo.TransitionStatus(ctx, pedido, from); err != nil {
		return nil, err
	}
	return pedido, nil
}
