package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/finance"
	"github.com/lojamae/backend/internal/domain/shared"
)

// FornecedorRepository defines persistence for suppliers
type FornecedorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Fornecedor, error)
	FindByCNPJ(ctx context.Context, cnpj string) (*Fornecedor, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Fornecedor, int64, error)
	Save(ctx context.Context, fornecedor *Fornecedor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PedidoCompraRepository defines persistence for purchase orders
type PedidoCompraRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PedidoCompra, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PedidoCompra, int64, error)
	FindByFornecedor(ctx context.Context, fornecedorID uuid.UUID, filter shared.Filter) ([]PedidoCompra, int64, error)
	Save(ctx context.Context, pedido *PedidoCompra) error
	// TransitionStatus persists the status change and its timestamps in a single
	// write guarded by the status the caller loaded.
	TransitionStatus(ctx context.Context, pedido *PedidoCompra, from PedidoCompraStatus) error
}

// NFeRepository defines persistence for imported invoices.
// FindByChaveAcesso backs the duplicate-import guard.
type NFeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*NFe, error)
	FindByChaveAcesso(ctx context.Context, chave string) (*NFe, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]NFe, int64, error)
	Save(ctx context.Context, nfe *NFe) error
	// SaveWithContas persists the invoice and its payables atomically, so a
	// failed installment never leaves a half-imported invoice behind.
	SaveWithContas(ctx context.Context, nfe *NFe, contas []*finance.Conta) error
}
