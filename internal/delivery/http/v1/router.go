package v1

import (
	"time"

	"career-portal-backend/config"
	"career-portal-backend/internal/delivery/http/middleware"
	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AccountUC domain.AccountUsecase
	ProfileUC domain.ProfileUsecase
	SetupUC   domain.SetupUsecase
	ResumeUC  domain.ResumeUsecase
	AIUC      domain.AIUsecase
	JobUC     domain.JobUsecase
	HealthUC  usecase.HealthUsecase
	// Scanner checks uploads; nil skips scanning
	Scanner      antivirus.Scanner
	JWKSProvider *auth.Provider
	Config       *config.Config
	// Redis returns the shared client or nil; rate limiting falls back to memory
	Redis func() *goredis.Client
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	if !cfg.Production {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.Production))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(
		middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window, deps.Redis),
	))

	v1 := r.Group("/v1")

	NewHealthHandler(v1, deps.HealthUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg))
	{
		aiLimit := middleware.RateLimitMiddleware(
			middleware.AIRateLimitConfig(cfg.RateLimitAIThreshold, window, deps.Redis),
		)

		NewAccountHandler(protected, deps.AccountUC, deps.Scanner)
		NewProfileHandler(protected, deps.ProfileUC)
		NewSetupHandler(protected, deps.SetupUC)
		NewResumeHandler(protected, deps.ResumeUC)
		NewAIHandler(protected, deps.AIUC, deps.Scanner, aiLimit)
		NewJobHandler(protected, deps.JobUC)
	}

	return r
}
