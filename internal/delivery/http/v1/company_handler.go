package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/internal/discovery"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

func NewCompanyHandler(rg *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	companies := rg.Group("/companies")
	{
		companies.GET("", handler.List)
		companies.GET("/:name", handler.GetByName)
		companies.POST("/seed", handler.Seed)
		companies.POST("/discover", handler.Discover)
	}
}

type DiscoverCompaniesRequest struct {
	Query string `json:"query" binding:"required"`
	Count int    `json:"count" binding:"omitempty,min=1,max=20"`
}

func (h *CompanyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	companies, total, err := h.companyUC.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Companies retrieved", companies, response.Meta{
		Page: page, PageSize: pageSize, Total: total,
	})
}

func (h *CompanyHandler) GetByName(c *gin.Context) {
	company, err := h.companyUC.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Company not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company retrieved", company)
}

// Seed loads the built-in company roster. Already-known names are skipped so
// the endpoint can be hit repeatedly.
func (h *CompanyHandler) Seed(c *gin.Context) {
	created, err := h.companyUC.Seed(c.Request.Context(), discovery.SeedCompanies)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Companies seeded", gin.H{"created": created})
}

func (h *CompanyHandler) Discover(c *gin.Context) {
	var req DiscoverCompaniesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	discovered, err := h.companyUC.Discover(c.Request.Context(), req.Query, req.Count)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Companies discovered", discovered)
}
