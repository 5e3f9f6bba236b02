package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	crmapp "github.com/lojamae/backend/internal/application/crm"
	financeapp "github.com/lojamae/backend/internal/application/finance"
	identityapp "github.com/lojamae/backend/internal/application/identity"
	inventoryapp "github.com/lojamae/backend/internal/application/inventory"
	marketingapp "github.com/lojamae/backend/internal/application/marketing"
	procurementapp "github.com/lojamae/backend/internal/application/procurement"
	reportapp "github.com/lojamae/backend/internal/application/report"
	salesapp "github.com/lojamae/backend/internal/application/sales"
	"github.com/lojamae/backend/internal/infrastructure/auth"
	"github.com/lojamae/backend/internal/infrastructure/config"
	"github.com/lojamae/backend/internal/infrastructure/logger"
	"github.com/lojamae/backend/internal/infrastructure/meta"
	"github.com/lojamae/backend/internal/infrastructure/nfe"
	"github.com/lojamae/backend/internal/infrastructure/persistence"
	"github.com/lojamae/backend/internal/interfaces/http/handler"
	"github.com/lojamae/backend/internal/interfaces/http/middleware"
	"github.com/lojamae/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	log.Info("Starting lojamae backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	leadRepo := persistence.NewGormLeadRepository(db.DB)
	clienteRepo := persistence.NewGormClienteRepository(db.DB)
	visitaRepo := persistence.NewGormVisitaRepository(db.DB)
	followUpRepo := persistence.NewGormFollowUpRepository(db.DB)
	orcamentoRepo := persistence.NewGormOrcamentoRepository(db.DB)
	checklistRepo := persistence.NewGormChecklistRepository(db.DB)
	ordemRepo := persistence.NewGormOrdemProducaoRepository(db.DB)
	fornecedorRepo := persistence.NewGormFornecedorRepository(db.DB)
	pedidoRepo := persistence.NewGormPedidoCompraRepository(db.DB)
	nfeRepo := persistence.NewGormNFeRepository(db.DB)
	produtoRepo := persistence.NewGormProdutoRepository(db.DB)
	movimentoRepo := persistence.NewGormMovimentoRepository(db.DB)
	contaRepo := persistence.NewGormContaRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Using in-memory token blacklist; revocations are lost on restart")
	}

	gate := authz.NewGate()

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, gate, log)
	leadService := crmapp.NewLeadService(leadRepo, gate, log)
	clienteService := crmapp.NewClienteService(clienteRepo, leadRepo, followUpRepo, gate, log)
	visitaService := crmapp.NewVisitaService(visitaRepo, leadRepo, gate, log)
	orcamentoService := salesapp.NewOrcamentoService(orcamentoRepo, leadRepo, gate, log)
	checklistService := salesapp.NewChecklistService(checklistRepo, orcamentoRepo, gate, log)
	ordemService := salesapp.NewOrdemProducaoService(ordemRepo, orcamentoRepo, gate, log)
	fornecedorService := procurementapp.NewFornecedorService(fornecedorRepo, gate, log)
	pedidoService := procurementapp.NewPedidoCompraService(pedidoRepo, fornecedorRepo, gate, log)
	nfeService := procurementapp.NewNFeImportService(nfeRepo, fornecedorRepo, nfe.NewParser(), gate, log)
	estoqueService := inventoryapp.NewEstoqueService(produtoRepo, movimentoRepo, gate, log)
	contaService := financeapp.NewContaService(contaRepo, gate, log)
	reportService := reportapp.NewReportService(orcamentoRepo, contaRepo, produtoRepo, gate, log)

	var graph marketingapp.GraphAPI
	if graphClient, err := meta.NewClient(cfg.Meta); err != nil {
		// endpoints stay mounted and answer with a config error
		log.Warn("Meta integration not configured", zap.Error(err))
		graph = meta.Unconfigured()
	} else {
		graph = graphClient
	}
	marketingService := marketingapp.NewMarketingService(graph, leadRepo, gate, log)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.Setup(router.Config{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
	}, router.Handlers{
		Auth:          handler.NewAuthHandler(authService, jwtService, cfg.Cookie),
		User:          handler.NewUserHandler(userService),
		Lead:          handler.NewLeadHandler(leadService),
		Cliente:       handler.NewClienteHandler(clienteService),
		Visita:        handler.NewVisitaHandler(visitaService),
		Orcamento:     handler.NewOrcamentoHandler(orcamentoService),
		Checklist:     handler.NewChecklistHandler(checklistService),
		OrdemProducao: handler.NewOrdemProducaoHandler(ordemService),
		Fornecedor:    handler.NewFornecedorHandler(fornecedorService),
		PedidoCompra:  handler.NewPedidoCompraHandler(pedidoService),
		NFe:           handler.NewNFeHandler(nfeService),
		Estoque:       handler.NewEstoqueHandler(estoqueService),
		Conta:         handler.NewContaHandler(contaService),
		Report:        handler.NewReportHandler(reportService),
		Marketing:     handler.NewMarketingHandler(marketingService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
