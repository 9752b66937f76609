package v1

import (
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	ListingUC     domain.ListingUsecase
	SkillUC       domain.SkillUsecase
	ApplicationUC domain.ApplicationUsecase
	HealthUC      usecase.HealthUsecase
	Verifier      middleware.TokenVerifier
	RateLimiter   *middleware.RateLimiter
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	NewHealthHandler(v1, deps.HealthUC)
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	optional := v1.Group("")
	optional.Use(middleware.OptionalAuthMiddleware(deps.Verifier))

	seeker := v1.Group("")
	seeker.Use(middleware.AuthMiddleware(deps.Verifier), middleware.RequireRole(domain.RoleJobSeeker))

	company := v1.Group("")
	company.Use(middleware.AuthMiddleware(deps.Verifier), middleware.RequireRole(domain.RoleCompany))

	applyLimit := deps.RateLimiter.Middleware(middleware.ApplyRateLimitConfig(cfg.RateLimitApplyThreshold, window))

	NewJobHandler(optional, company, deps.JobUC, deps.ListingUC)
	NewSkillHandler(v1, seeker, deps.SkillUC, deps.ListingUC)
	NewApplicationHandler(seeker, company, deps.ApplicationUC, applyLimit)

	return r
}
