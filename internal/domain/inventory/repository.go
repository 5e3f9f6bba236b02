package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/lojamae/backend/internal/domain/shared"
)

// ProdutoRepository defines persistence for stocked products
type ProdutoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Produto, error)
	FindByCodigo(ctx context.Context, codigo string) (*Produto, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Produto, int64, error)
	FindAbaixoDoMinimo(ctx context.Context) ([]Produto, error)
	Save(ctx context.Context, produto *Produto) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovimentoRepository defines persistence for stock movements
type MovimentoRepository interface {
	Save(ctx context.Context, movimento *MovimentoEstoque) error
	FindByProduto(ctx context.Context, produtoID uuid.UUID, filter shared.Filter) ([]MovimentoEstoque, int64, error)
}
