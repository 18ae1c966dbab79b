package v1

import (
	"time"

	"go-jobscout-backend/config"
	"go-jobscout-backend/internal/delivery/http/middleware"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/internal/scheduler"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouterDeps struct {
	CompanyUC   domain.CompanyUsecase
	JobUC       domain.JobUsecase
	CandidateUC domain.CandidateUsecase
	SavedJobUC  domain.SavedJobUsecase
	MatchUC     domain.MatchUsecase
	IngestionUC domain.IngestionUsecase
	Locator     domain.CareerPageLocator
	Scheduler   *scheduler.Scheduler
	DB          *pgxpool.Pool
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must run first.
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	globalRL := middleware.DefaultRateLimitConfig()
	globalRL.Limit = deps.Config.RateLimitGlobalThreshold
	globalRL.Window = time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second
	r.Use(middleware.RateLimitMiddleware(globalRL))

	v1 := r.Group("/v1")

	// Model-backed ingestion endpoints get a tighter limit on top of the
	// global one.
	ingestRL := middleware.RateLimitMiddleware(middleware.IngestRateLimitConfig())

	NewHealthHandler(v1, deps.DB)
	NewCompanyHandler(v1, deps.CompanyUC)
	NewJobHandler(v1, deps.JobUC)
	NewCandidateHandler(v1, ingestRL, deps.CandidateUC)
	NewSavedJobHandler(v1, deps.SavedJobUC)
	NewMatchHandler(v1, deps.MatchUC)
	NewDiscoveryHandler(v1, ingestRL, deps.CompanyUC, deps.IngestionUC, deps.Locator, deps.Scheduler)

	return r
}
