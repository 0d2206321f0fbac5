package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/teleforge/internal/account"
	accountservice "github.com/smallbiznis/teleforge/internal/account/service"
	"github.com/smallbiznis/teleforge/internal/clock"
	"github.com/smallbiznis/teleforge/internal/config"
	"github.com/smallbiznis/teleforge/internal/generator"
	generatorservice "github.com/smallbiznis/teleforge/internal/generator/service"
	"github.com/smallbiznis/teleforge/internal/observability"
)

var Module = fx.Module("http.server",
	config.Module,
	observability.Module,
	clock.Module,
	account.Module,
	generator.Module,
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	genCfg     *config.GeneratorConfigHolder
	accountSvc *accountservice.Service
	genSvc     *generatorservice.Service
	clk        clock.Clock
	log        *zap.Logger

	datasets *registry
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	GenCfg     *config.GeneratorConfigHolder
	AccountSvc *accountservice.Service
	GenSvc     *generatorservice.Service
	Clk        clock.Clock
	Log        *zap.Logger
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		genCfg:     p.GenCfg,
		accountSvc: p.AccountSvc,
		genSvc:     p.GenSvc,
		clk:        p.Clk,
		log:        p.Log.Named("server"),
		datasets:   newRegistry(),
	}

	svc.registerDatasetRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerDatasetRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/datasets", s.CreateDataset)
	v1.GET("/datasets", s.ListDatasets)
	v1.GET("/datasets/:id", s.GetDataset)
	v1.GET("/datasets/:id/usage.csv", s.DownloadUsageCSV)
	v1.GET("/datasets/:id/churn.csv", s.DownloadChurnCSV)
	v1.GET("/datasets/:id/accounts.csv", s.DownloadAttributesCSV)
	v1.GET("/datasets/:id/inserts.sql", s.DownloadInserts)
}
