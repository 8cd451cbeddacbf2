package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"freemodels-server/services/catalog-api/internal/config"
	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure"
	middleware "freemodels-server/services/catalog-api/internal/interfaces/httpserver/middlewares"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/admin"
	"freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/public"
	v1 "freemodels-server/services/catalog-api/internal/interfaces/httpserver/routes/v1"

	_ "freemodels-server/services/catalog-api/docs/swagger"
)

type HTTPServer struct {
	engine      *gin.Engine
	infra       *infrastructure.Infrastructure
	v1Route     *v1.V1Route
	publicRoute *public.PublicRoute
	adminRoute  *admin.AdminRoute
	config      *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	publicRoute *public.PublicRoute,
	adminRoute *admin.AdminRoute,
	apikeyService *apikey.Service,
	requestLogRepo requestlog.Repository,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		engine:      gin.New(),
		infra:       infra,
		v1Route:     v1Route,
		publicRoute: publicRoute,
		adminRoute:  adminRoute,
		config:      cfg,
	}

	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.RequestLogMiddleware(requestLogRepo))

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.EnableSwagger {
		server.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server.registerRoutes(apikeyService)
	return &server
}

func (httpServer *HTTPServer) registerRoutes(apikeyService *apikey.Service) {
	cfg := httpServer.config
	api := httpServer.engine.Group("/api")

	requireKey := middleware.RequireAPIKey(apikeyService)
	optionalKey := middleware.OptionalAPIKey(apikeyService)
	rateLimit := middleware.RateLimitMiddleware(cfg.RateLimitPerMinute)

	httpServer.v1Route.RegisterRouter(api, requireKey, rateLimit)
	httpServer.publicRoute.RegisterRouter(api, optionalKey)
	httpServer.adminRoute.RegisterRouter(
		api,
		middleware.RequireRefreshKey(cfg.RefreshAPIKey),
		middleware.RequireAdminSecret(cfg.AdminSecret),
	)
}

func (httpServer *HTTPServer) Run() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", httpServer.config.HTTPPort),
		Handler:           httpServer.engine,
		ReadTimeout:       httpServer.config.HTTPTimeout,
		WriteTimeout:      httpServer.config.HTTPTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
