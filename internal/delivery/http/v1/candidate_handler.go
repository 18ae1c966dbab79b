package v1

import (
	"errors"
	"net/http"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(rg *gin.RouterGroup, ingestRL gin.HandlerFunc, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := rg.Group("/candidates")
	{
		candidates.POST("", ingestRL, handler.Create)
		candidates.GET("", handler.List)
		candidates.GET("/:id", handler.GetDetails)
	}
}

type CreateCandidateRequest struct {
	ResumeText string `json:"resume_text" binding:"required"`
}

func (h *CandidateHandler) Create(c *gin.Context) {
	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate, err := h.candidateUC.CreateFromResume(c.Request.Context(), req.ResumeText)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Candidate profile created", candidate)
}

func (h *CandidateHandler) List(c *gin.Context) {
	candidates, err := h.candidateUC.ListCandidates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates retrieved", candidates)
}

func (h *CandidateHandler) GetDetails(c *gin.Context) {
	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Error(apperror.NotFound("Candidate not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate retrieved", candidate)
}
