package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/lojamae/backend/internal/application/report"
	"github.com/lojamae/backend/internal/domain/finance"
)

// ReportHandler handles management report endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// PeriodoRequest bounds a report to [inicio, fim)
type PeriodoRequest struct {
	Inicio time.Time `form:"inicio" binding:"required" time_format:"2006-01-02"`
	Fim    time.Time `form:"fim" binding:"required" time_format:"2006-01-02"`
}

// Vendas returns a seller's budget funnel over a period. Without a
// vendedor_id a non-admin caller gets their own numbers.
func (h *ReportHandler) Vendas(c *gin.Context) {
	var req PeriodoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var vendedorID *uuid.UUID
	if raw := c.Query("vendedor_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid seller ID format")
			return
		}
		vendedorID = &parsed
	}

	report, err := h.reportService.VendasReport(c.Request.Context(), getSession(c), vendedorID, reportapp.PeriodoInput{
		Inicio: req.Inicio,
		Fim:    req.Fim,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Financeiro aggregates entries of one tipo over a period
func (h *ReportHandler) Financeiro(c *gin.Context) {
	var req PeriodoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tipo := finance.TipoConta(strings.ToUpper(c.Query("tipo")))
	report, err := h.reportService.FinanceiroReport(c.Request.Context(), getSession(c), tipo, reportapp.PeriodoInput{
		Inicio: req.Inicio,
		Fim:    req.Fim,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Estoque summarizes the current stock position
func (h *ReportHandler) Estoque(c *gin.Context) {
	report, err := h.reportService.EstoqueReport(c.Request.Context(), getSession(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
