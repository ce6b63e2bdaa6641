package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/majilabs/oasis/internal/auth/domain"
	"github.com/majilabs/oasis/internal/config"
	obsmiddleware "github.com/majilabs/oasis/internal/observability/logger"
	obsmetrics "github.com/majilabs/oasis/internal/observability/metrics"
	recommendationdomain "github.com/majilabs/oasis/internal/recommendation/domain"
	reservoirdomain "github.com/majilabs/oasis/internal/reservoir/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	authsvc      authdomain.Service
	reservoirSvc reservoirdomain.Service
	recommendSvc recommendationdomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	Authsvc      authdomain.Service
	ReservoirSvc reservoirdomain.Service
	RecommendSvc recommendationdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("http.server"),
		authsvc:      p.Authsvc,
		reservoirSvc: p.ReservoirSvc,
		recommendSvc: p.RecommendSvc,
	}

	svc.registerAuthRoutes()
	svc.registerReservoirRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/api/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.AuthRequired(), s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerReservoirRoutes() {
	api := s.engine.Group("/api/reservoirs")

	api.GET("", s.ListReservoirs)
	api.GET("/search", s.SearchReservoirs)
	api.GET("/status/:status", s.ListReservoirsByStatus)
	api.GET("/critical", s.ListCriticalReservoirs)
	api.GET("/running-out-soon", s.ListRunningOutSoon)
	api.GET("/summary", s.GetReservoirSummary)
	api.GET("/recommendations", s.AuthRequired(), s.GetRecommendations)
	api.GET("/:id", s.GetReservoirByID)

	api.POST("", s.AuthRequired(), s.RequireAdmin(), s.CreateReservoir)
	api.PUT("/:id", s.AuthRequired(), s.RequireAdmin(), s.UpdateReservoir)
	api.DELETE("/:id", s.AuthRequired(), s.RequireAdmin(), s.DeleteReservoir)
}
