package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/rankinvoice/internal/config"
	invoicedomain "github.com/smallbiznis/rankinvoice/internal/invoice/domain"
	obsmiddleware "github.com/smallbiznis/rankinvoice/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/rankinvoice/internal/observability/metrics"
	obstracing "github.com/smallbiznis/rankinvoice/internal/observability/tracing"
	"github.com/smallbiznis/rankinvoice/pkg/telemetry"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

type EngineParams struct {
	fx.In

	Cfg      config.Config
	Metrics  *telemetry.Metrics  `optional:"true"`
	Registry *prometheus.Registry `optional:"true"`
}

func NewEngine(p EngineParams) *gin.Engine {
	if !p.Cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           p.Cfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(p.Metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// gorm's prometheus plugin registers on the default registry
	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	if p.Registry != nil {
		gatherers = append(prometheus.Gatherers{p.Registry}, gatherers...)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))

	return r
}

func registerGin(p EngineParams) *gin.Engine {
	return NewEngine(p)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		log:        p.Log.Named("http.server"),
		invoiceSvc: p.InvoiceSvc,
	}

	svc.registerAPIRoutes()
	svc.registerUIRoutes()
	svc.registerFallback()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/ranks", s.ListRanks)

	form := api.Group("/form")
	{
		form.GET("", s.GetForm)
		form.PUT("/identity", s.SetIdentity)
		form.PUT("/rank", s.SetRank)
		form.PUT("/upgrade/from", s.SetUpgradeFrom)
		form.PUT("/upgrade/to", s.SetUpgradeTo)
		form.PUT("/discount", s.SetDiscount)
		form.POST("/discount/backspace", s.BackspaceDiscount)
		form.PUT("/notes", s.SetNotes)
		form.PUT("/date", s.SetDate)
		form.POST("/reset", s.ResetForm)
		form.POST("/download", s.DownloadInvoice)

		// -------- Items --------
		form.POST("/items", s.AddItem)
		form.PATCH("/items/:id", s.UpdateItem)
		form.DELETE("/items/:id", s.RemoveItem)
		form.DELETE("/items", s.ClearItems)
	}
}

func (s *Server) registerUIRoutes() {
	s.engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/preview")
	})
	s.engine.GET("/preview", s.PreviewPage)
}

func (s *Server) registerFallback() {
	s.engine.NoRoute(func(c *gin.Context) {
		AbortWithError(c, ErrNotFound)
	})
}
