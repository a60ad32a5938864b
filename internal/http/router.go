// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, caller authentication and rate limiting.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID
//  3. RedactingLogger
//  4. Recovery
//  5. Body size limit
//  6. Metrics (+ /metrics)
//  7. CORS and security headers
//  8. API group: Authenticate, then the per-caller rate limiter
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/go-survey-backend/docs"
	"github.com/tbourn/go-survey-backend/internal/cache"
	"github.com/tbourn/go-survey-backend/internal/config"
	"github.com/tbourn/go-survey-backend/internal/domain"
	"github.com/tbourn/go-survey-backend/internal/events"
	"github.com/tbourn/go-survey-backend/internal/http/handlers"
	"github.com/tbourn/go-survey-backend/internal/http/middleware"
	"github.com/tbourn/go-survey-backend/internal/services"
)

// Deps are the infrastructure handles the services are built on. A nil Cache
// falls back to process memory and a nil Events to a no-op publisher.
type Deps struct {
	DB     *gorm.DB
	Cache  cache.Cache
	Events events.Publisher
}

var corsHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Cookie", "If-None-Match"}

// RegisterRoutes attaches all middleware and HTTP endpoints to r and mounts
// the API under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) error {
	if deps.DB == nil {
		return errors.New("httpapi: nil database")
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}

	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskQueryParams: []string{"customer_id"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	apiBase := cfg.APIBasePath
	if apiBase == "/" {
		apiBase = ""
	}
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
		NoStorePrefixes: []string{
			apiBase + "/auth",
			apiBase + "/survey",
			apiBase + "/admin",
			apiBase + "/portal",
		},
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Services
	authSvc := services.NewAuthService(cfg.Auth)
	surveySvc := services.NewSurveyService(deps.DB, deps.Events)
	if cfg.Survey.DailyWindow > 0 {
		surveySvc.DailyWindow = cfg.Survey.DailyWindow
	}
	if cfg.Auth.DefaultLang != "" {
		surveySvc.DefaultLang = cfg.Auth.DefaultLang
	}
	portalSvc, err := services.NewPortalService(deps.DB, cfg.Portal)
	if err != nil {
		return err
	}
	h := handlers.New(handlers.Services{
		Auth:    authSvc,
		Survey:  surveySvc,
		Reports: services.NewReportService(deps.DB, deps.Cache, cfg.Survey.ReportCacheTTL),
		Catalog: services.NewCatalogService(deps.DB),
		Portal:  portalSvc,
	}, handlers.CookieOptions{
		Secure:    cfg.Auth.CookieSecure,
		PortalTTL: cfg.Portal.SessionTTL,
	})

	// Abandon fires on page unload and must not be dropped by the limiter.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByCaller()).
		SkipPaths(apiBase + "/survey/abandon")

	api := groupWithPrefix(r, apiBase)
	api.Use(middleware.Authenticate(portalSvc), rl.Handler())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/request", h.RequestAuth)
		authGroup.POST("/verify", h.VerifyAuth)
		if cfg.Auth.MockEnabled {
			authGroup.POST("/mock/verify", h.MockVerify)
		}
	}

	survey := api.Group("/survey")
	{
		survey.GET("/session", h.GetSession)
		survey.POST("/answer", h.RecordAnswer)
		survey.POST("/progress", h.RecordProgress)
		survey.POST("/finish", h.FinishSurvey)
		survey.POST("/abandon", h.AbandonSurvey)
		survey.POST("/logout", h.LogoutSurvey)
		survey.GET("/employees", h.ListActiveEmployees)
		survey.GET("/questions", h.ListActiveQuestions)
	}

	reports := api.Group("/reports", gzip.Gzip(gzip.DefaultCompression))
	{
		reports.GET("/employee", h.EmployeeReport)
		reports.GET("/supervisor", middleware.RequireRole(domain.RoleAdmin, domain.RoleSupervisor), h.SupervisorReport)
		reports.GET("/manager", middleware.RequireRole(domain.RoleAdmin), h.ManagerReport)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", h.AdminLogin)
		admin.POST("/logout", h.AdminLogout)

		crud := admin.Group("", middleware.RequireRole(domain.RoleAdmin), gzip.Gzip(gzip.DefaultCompression))
		crud.GET("/employees", h.ListEmployees)
		crud.POST("/employees", h.CreateEmployee)
		crud.PATCH("/employees/:id", h.UpdateEmployee)
		crud.GET("/questions", h.ListQuestions)
		crud.POST("/questions", h.CreateQuestion)
		crud.PATCH("/questions/:id", h.UpdateQuestion)
		crud.GET("/users", h.ListUsers)
		crud.POST("/users", h.CreateUser)
		crud.PATCH("/users/:id", h.UpdateUser)
	}

	portal := api.Group("/portal")
	{
		portal.POST("/login", h.PortalLogin)
		portal.POST("/logout", h.PortalLogout)
		portal.GET("/me", h.PortalMe)
		portal.GET("/users", h.PortalUsers)
	}
	return nil
}

// corsMiddleware allows any origin without credentials when no allowlist is
// configured. With an allowlist, credentialed requests (survey and portal
// cookies) are accepted from the listed origins only.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  corsHeaders,
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "ETag"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// Force ACAO: * even for requests without an Origin header.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}
	base.AllowOrigins = origins
	base.AllowCredentials = true
	return []gin.HandlerFunc{cors.New(base)}
}

// limitBody caps the request body at maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
