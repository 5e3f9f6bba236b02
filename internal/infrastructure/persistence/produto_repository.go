package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lojamae/backend/internal/domain/inventory"
	"github.com/lojamae/backend/internal/domain/shared"
	"github.com/lojamae/backend/internal/infrastructure/persistence/models"
)

// GormProdutoRepository implements inventory.ProdutoRepository using GORM
type GormProdutoRepository struct {
	db *gorm.DB
}

// NewGormProdutoRepository creates a new GormProdutoRepository
func NewGormProdutoRepository(db *gorm.DB) *GormProdutoRepository {
	return &GormProdutoRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProdutoRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Produto, error) {
	var model models.ProdutoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCodigo finds a product by its code
func (r *GormProdutoRepository) FindByCodigo(ctx context.Context, codigo string) (*inventory.Produto, error) {
	var model models.ProdutoModel
	if err := r.db.WithContext(ctx).Where("codigo = ?", codigo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProdutoRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Produto, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProdutoModel{})
	if categoria, ok := filter.Filters["categoria"]; ok {
		query = query.Where("categoria = ?", categoria)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("codigo LIKE ? OR descricao LIKE ?", like, like)
	}

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var produtoModels []models.ProdutoModel
	if err := query.Find(&produtoModels).Error; err != nil {
		return nil, 0, err
	}
	produtos := make([]inventory.Produto, len(produtoModels))
	for i, model := range produtoModels {
		produtos[i] = *model.ToDomain()
	}
	return produtos, total, nil
}

// FindAbaixoDoMinimo finds active products below their replenishment threshold
func (r *GormProdutoRepository) FindAbaixoDoMinimo(ctx context.Context) ([]inventory.Produto, error) {
	var produtoModels []models.ProdutoModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND estoque_minimo > 0 AND quantidade < estoque_minimo", true).
		Order("codigo asc").
		Find(&produtoModels).Error
	if err != nil {
		return nil, err
	}
	produtos := make([]inventory.Produto, len(produtoModels))
	for i, model := range produtoModels {
		produtos[i] = *model.ToDomain()
	}
	return produtos, nil
}

// Save persists a product under the optimistic version check, so two
// racing stock movements cannot both write the same starting quantity
func (r *GormProdutoRepository) Save(ctx context.Context, produto *inventory.Produto) error {
	model := models.ProdutoModelFromDomain(produto)
	return saveAggregate(r.db.WithContext(ctx), model, &model.AggregateModel)
}

// Delete removes a product
func (r *GormProdutoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ProdutoModel{}, "id = ?", id).Error
}

// GormMovimentoRepository implements inventory.MovimentoRepository using GORM
type GormMovimentoRepository struct {
	db *gorm.DB
}

// NewGormMovimentoRepository creates a new GormMovimentoRepository
func NewGormMovimentoRepository(db *gorm.DB) *GormMovimentoRepository {
	return &GormMovimentoRepository{db: db}
}

// Save persists a stock movement
func (r *GormMovimentoRepository) Save(ctx context.Context, movimento *inventory.MovimentoEstoque) error {
	model := models.MovimentoEstoqueModelFromDomain(movimento)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByProduto finds movements for a product, newest first
func (r *GormMovimentoRepository) FindByProduto(ctx context.Context, produtoID uuid.UUID, filter shared.Filter) ([]inventory.MovimentoEstoque, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MovimentoEstoqueModel{}).Where("produto_id = ?", produtoID)

	query, total, err := countThenPage(query, filter)
	if err != nil {
		return nil, 0, err
	}
	var movimentoModels []models.MovimentoEstoqueModel
	if err := query.Find(&movimentoModels).Error; err != nil {
		return nil, 0, err
	}
	movimentos := make([]inventory.MovimentoEstoque, len(movimentoModels))
	for i, model := range movimentoModels {
		movimentos[i] = *model.ToDomain()
	}
	return movimentos, total, nil
}
