package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/finance"
)

// CreateContaInput carries the data for a manual financial entry
type CreateContaInput struct {
	Tipo       finance.TipoConta `json:"tipo" binding:"required"`
	Descricao  string            `json:"descricao" binding:"required"`
	Valor      decimal.Decimal   `json:"valor" binding:"required"`
	Vencimento time.Time         `json:"vencimento" binding:"required"`
}

// MarcarVencidasResult reports a batch overdue sweep
type MarcarVencidasResult struct {
	Marcadas int `json:"marcadas"`
}
