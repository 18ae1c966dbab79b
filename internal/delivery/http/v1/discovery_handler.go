package v1

import (
	"context"
	"errors"
	"net/http"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/internal/scheduler"
	"go-jobscout-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DiscoveryHandler struct {
	companyUC   domain.CompanyUsecase
	ingestionUC domain.IngestionUsecase
	locator     domain.CareerPageLocator
	sched       *scheduler.Scheduler
}

func NewDiscoveryHandler(rg *gin.RouterGroup, ingestRL gin.HandlerFunc, companyUC domain.CompanyUsecase, ingestionUC domain.IngestionUsecase, locator domain.CareerPageLocator, sched *scheduler.Scheduler) {
	handler := &DiscoveryHandler{
		companyUC:   companyUC,
		ingestionUC: ingestionUC,
		locator:     locator,
		sched:       sched,
	}

	disc := rg.Group("/discovery")
	{
		disc.GET("/career-page", handler.LocateCareerPage)
		disc.GET("/detect-ats", handler.DetectATS)
		disc.POST("/ingest/:name", ingestRL, handler.IngestCompany)
		disc.POST("/ingest-universal/:name", ingestRL, handler.IngestCompanyUniversal)
		disc.POST("/run-batch", handler.RunBatch)
		disc.POST("/cleanup", handler.RunCleanup)
	}
}

func (h *DiscoveryHandler) LocateCareerPage(c *gin.Context) {
	homepage := c.Query("url")
	if homepage == "" {
		c.Error(apperror.BadRequest("url query parameter is required"))
		return
	}

	careerPage, found := h.locator.Locate(c.Request.Context(), homepage)
	response.Success(c, http.StatusOK, "Career page lookup finished", gin.H{
		"found":           found,
		"career_page_url": careerPage,
	})
}

func (h *DiscoveryHandler) DetectATS(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.Error(apperror.BadRequest("url query parameter is required"))
		return
	}

	atsType := discovery.DetectATS(pageURL)
	response.Success(c, http.StatusOK, "ATS detection finished", gin.H{
		"ats_type":        atsType,
		"has_api_source":  discovery.HasAPISource(atsType),
		"supported_types": discovery.SupportedATSTypes(),
	})
}

func (h *DiscoveryHandler) IngestCompany(c *gin.Context) {
	h.ingest(c, h.ingestionUC.IngestCompany)
}

func (h *DiscoveryHandler) IngestCompanyUniversal(c *gin.Context) {
	h.ingest(c, h.ingestionUC.IngestCompanyUniversal)
}

func (h *DiscoveryHandler) ingest(c *gin.Context, run func(ctx context.Context, company *domain.Company) ([]domain.IngestedJob, error)) {
	company, err := h.companyUC.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Company not found"))
			return
		}
		c.Error(err)
		return
	}

	ingested, err := run(c.Request.Context(), company)
	if err != nil {
		c.Error(err)
		return
	}

	newJobs := 0
	for _, job := range ingested {
		if job.IsNew {
			newJobs++
		}
	}

	response.Success(c, http.StatusOK, "Ingestion finished", gin.H{
		"company":  company.Name,
		"jobs":     ingested,
		"total":    len(ingested),
		"new_jobs": newJobs,
	})
}

func (h *DiscoveryHandler) RunBatch(c *gin.Context) {
	result := h.sched.RunBatch(c.Request.Context())
	response.Success(c, http.StatusOK, "Discovery batch finished", result)
}

func (h *DiscoveryHandler) RunCleanup(c *gin.Context) {
	result := h.sched.RunCleanup(c.Request.Context())
	response.Success(c, http.StatusOK, "Cleanup finished", result)
}
