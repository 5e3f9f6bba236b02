package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/infrastructure/auth"
	"github.com/lojamae/backend/internal/infrastructure/logger"
	"github.com/lojamae/backend/internal/interfaces/http/handler"
	"github.com/lojamae/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every endpoint handler the router wires up
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Lead          *handler.LeadHandler
	Cliente       *handler.ClienteHandler
	Visita        *handler.VisitaHandler
	Orcamento     *handler.OrcamentoHandler
	Checklist     *handler.ChecklistHandler
	OrdemProducao *handler.OrdemProducaoHandler
	Fornecedor    *handler.FornecedorHandler
	PedidoCompra  *handler.PedidoCompraHandler
	NFe           *handler.NFeHandler
	Estoque       *handler.EstoqueHandler
	Conta         *handler.ContaHandler
	Report        *handler.ReportHandler
	Marketing     *handler.MarketingHandler
}

// Config carries the router's cross-cutting dependencies
type Config struct {
	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist
	Logger     *zap.Logger
	CORS       middleware.CORSConfig
}

// Setup builds the engine with the full middleware chain and all
// routes. The session middleware runs on every request; authorization
// itself happens in the application layer, so routes are registered
// without per-route role guards.
func Setup(cfg Config, handlers Handlers) *gin.Engine {
	registerValidators()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.Session(cfg.JWTService, cfg.Blacklist),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.Auth.Register)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.POST("/refresh", handlers.Auth.Refresh)
		authGroup.POST("/logout", handlers.Auth.Logout)
		authGroup.GET("/me", handlers.Auth.Me)
	}

	users := api.Group("/users")
	{
		users.GET("", handlers.User.List)
		users.GET("/:id", handlers.User.Get)
		users.PATCH("/:id", handlers.User.Update)
		users.DELETE("/:id", handlers.User.Deactivate)
	}

	leads := api.Group("/leads")
	{
		leads.POST("", handlers.Lead.Create)
		leads.GET("", handlers.Lead.List)
		leads.GET("/pool", handlers.Lead.ListUnclaimed)
		leads.GET("/:id", handlers.Lead.Get)
		leads.POST("/:id/claim", handlers.Lead.Claim)
		leads.POST("/:id/transition", handlers.Lead.Transition)
	}

	clientes := api.Group("/clientes")
	{
		clientes.POST("", handlers.Cliente.Create)
		clientes.GET("", handlers.Cliente.List)
		clientes.GET("/:id", handlers.Cliente.Get)
		clientes.PATCH("/:id", handlers.Cliente.Update)
		clientes.POST("/:id/follow-ups", handlers.Cliente.AddFollowUp)
		clientes.GET("/:id/follow-ups", handlers.Cliente.ListFollowUps)
		clientes.GET("/:id/visitas", handlers.Visita.ListByCliente)
	}

	visitas := api.Group("/visitas")
	{
		visitas.POST("", handlers.Visita.Schedule)
		visitas.GET("/minhas", handlers.Visita.ListMinhas)
		visitas.POST("/:id/finalizar", handlers.Visita.Finalize)
		visitas.POST("/:id/cancelar", handlers.Visita.Cancel)
	}

	orcamentos := api.Group("/orcamentos")
	{
		orcamentos.POST("", handlers.Orcamento.Create)
		orcamentos.GET("", handlers.Orcamento.List)
		orcamentos.GET("/:id", handlers.Orcamento.Get)
		orcamentos.POST("/:id/itens", handlers.Orcamento.AddItem)
		orcamentos.DELETE("/:id/itens/:itemId", handlers.Orcamento.RemoveItem)
		orcamentos.POST("/:id/desconto", handlers.Orcamento.ApplyDesconto)
		orcamentos.POST("/:id/desconto/aprovar", handlers.Orcamento.ApproveDesconto)
		orcamentos.POST("/:id/transition", handlers.Orcamento.Transition)
	}

	checklists := api.Group("/checklists")
	{
		checklists.POST("", handlers.Checklist.Create)
		checklists.GET("/minhas", handlers.Checklist.ListMinhas)
		checklists.GET("/:id", handlers.Checklist.Get)
		checklists.POST("/:id/agendar", handlers.Checklist.Agendar)
		checklists.POST("/:id/conferir", handlers.Checklist.ConferirItem)
	}

	ordens := api.Group("/ordens-producao")
	{
		ordens.POST("", handlers.OrdemProducao.Create)
		ordens.GET("", handlers.OrdemProducao.List)
		ordens.POST("/:id/iniciar", handlers.OrdemProducao.Iniciar)
		ordens.POST("/:id/concluir", handlers.OrdemProducao.Concluir)
		ordens.POST("/:id/cancelar", handlers.OrdemProducao.Cancelar)
	}

	fornecedores := api.Group("/fornecedores")
	{
		fornecedores.POST("", handlers.Fornecedor.Create)
		fornecedores.GET("", handlers.Fornecedor.List)
		fornecedores.GET("/:id", handlers.Fornecedor.Get)
		fornecedores.PATCH("/:id", handlers.Fornecedor.Update)
		fornecedores.DELETE("/:id", handlers.Fornecedor.Deactivate)
	}

	pedidos := api.Group("/pedidos-compra")
	{
		pedidos.POST("", handlers.PedidoCompra.Create)
		pedidos.GET("", handlers.PedidoCompra.List)
		pedidos.GET("/:id", handlers.PedidoCompra.Get)
		pedidos.POST("/:id/itens", handlers.PedidoCompra.AddItem)
		pedidos.POST("/:id/enviar", handlers.PedidoCompra.Enviar)
		pedidos.POST("/:id/receber", handlers.PedidoCompra.Receber)
		pedidos.POST("/:id/cancelar", handlers.PedidoCompra.Cancelar)
	}

	nfes := api.Group("/nfes")
	{
		nfes.POST("/import", handlers.NFe.Import)
		nfes.GET("", handlers.NFe.List)
		nfes.GET("/:id", handlers.NFe.Get)
	}

	produtos := api.Group("/produtos")
	{
		produtos.POST("", handlers.Estoque.CreateProduto)
		produtos.GET("", handlers.Estoque.ListProdutos)
		produtos.GET("/abaixo-minimo", handlers.Estoque.ListAbaixoDoMinimo)
		produtos.GET("/:id", handlers.Estoque.GetProduto)
		produtos.PATCH("/:id", handlers.Estoque.UpdateProduto)
		produtos.POST("/:id/entrada", handlers.Estoque.Entrada)
		produtos.POST("/:id/saida", handlers.Estoque.Saida)
		produtos.POST("/:id/ajuste", handlers.Estoque.Ajuste)
		produtos.GET("/:id/movimentos", handlers.Estoque.ListMovimentos)
	}

	contas := api.Group("/contas")
	{
		contas.POST("", handlers.Conta.Create)
		contas.GET("", handlers.Conta.List)
		contas.POST("/marcar-vencidas", handlers.Conta.MarcarVencidas)
		contas.GET("/origem/:origem/:origemId", handlers.Conta.ListByOrigem)
		contas.GET("/:id", handlers.Conta.Get)
		contas.POST("/:id/pagar", handlers.Conta.Pagar)
		contas.POST("/:id/cancelar", handlers.Conta.Cancelar)
	}

	reports := api.Group("/relatorios")
	{
		reports.GET("/vendas", handlers.Report.Vendas)
		reports.GET("/financeiro", handlers.Report.Financeiro)
		reports.GET("/estoque", handlers.Report.Estoque)
	}

	marketing := api.Group("/marketing")
	{
		marketing.POST("/connect", handlers.Marketing.Connect)
		marketing.POST("/posts", handlers.Marketing.Publish)
		marketing.GET("/posts/:postId/insights", handlers.Marketing.Insights)
		marketing.GET("/posts/:postId/comments", handlers.Marketing.Comments)
		marketing.POST("/leads/sync", handlers.Marketing.SyncLeads)
	}

	return engine
}
