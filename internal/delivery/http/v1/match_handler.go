package v1

import (
	"net/http"
	"strconv"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC domain.MatchUsecase
}

func NewMatchHandler(rg *gin.RouterGroup, matchUC domain.MatchUsecase) {
	handler := &MatchHandler{matchUC: matchUC}

	match := rg.Group("/match")
	{
		match.GET("/jobs/:id/candidates", handler.JobToCandidates)
		match.GET("/candidates/:id/jobs", handler.CandidateToJobs)
	}
}

func (h *MatchHandler) JobToCandidates(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	topK, minScore, err := matchParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	results, err := h.matchUC.MatchJobToCandidates(c.Request.Context(), jobID, topK, minScore)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates matched", results)
}

func (h *MatchHandler) CandidateToJobs(c *gin.Context) {
	topK, minScore, err := matchParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	results, err := h.matchUC.MatchCandidateToJobs(c.Request.Context(), c.Param("id"), topK, minScore)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs matched", results)
}

func matchParams(c *gin.Context) (int, *float64, error) {
	topK := 10
	if raw := c.Query("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, nil, apperror.BadRequest("top_k must be a positive integer")
		}
		topK = parsed
	}

	var minScore *float64
	if raw := c.Query("min_score"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < -1 || parsed > 1 {
			return 0, nil, apperror.BadRequest("min_score must be between -1 and 1")
		}
		minScore = &parsed
	}

	return topK, minScore, nil
}
