package v1

import (
	"net/http"
	"strconv"

	"go-jobscout-backend/internal/delivery/http/response"
	"go-jobscout-backend/internal/domain"
	"go-jobscout-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	savedJobUC domain.SavedJobUsecase
}

func NewSavedJobHandler(rg *gin.RouterGroup, savedJobUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedJobUC: savedJobUC}

	saved := rg.Group("/saved-jobs")
	{
		saved.POST("", handler.Save)
		saved.GET("", handler.List)
		saved.GET("/count", handler.Count)
		saved.GET("/:jobID", handler.IsSaved)
		saved.PATCH("/:jobID", handler.UpdateNotes)
		saved.DELETE("/:jobID", handler.Unsave)
	}
}

type SaveJobRequest struct {
	UserID string `json:"user_id" binding:"required"`
	JobID  int64  `json:"job_id" binding:"required"`
	Notes  string `json:"notes"`
}

type UpdateNotesRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Notes  string `json:"notes"`
}

func (h *SavedJobHandler) Save(c *gin.Context) {
	var req SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	saved, err := h.savedJobUC.SaveJob(c.Request.Context(), req.UserID, req.JobID, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job saved", saved)
}

func (h *SavedJobHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(apperror.BadRequest("user_id query parameter is required"))
		return
	}

	saved, err := h.savedJobUC.ListSavedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved jobs retrieved", saved)
}

func (h *SavedJobHandler) Count(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(apperror.BadRequest("user_id query parameter is required"))
		return
	}

	count, err := h.savedJobUC.CountSavedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved job count retrieved", gin.H{"count": count})
}

func (h *SavedJobHandler) IsSaved(c *gin.Context) {
	userID, jobID, err := savedJobParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	saved, err := h.savedJobUC.IsJobSaved(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Saved status retrieved", gin.H{"saved": saved})
}

func (h *SavedJobHandler) UpdateNotes(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobID"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	saved, err := h.savedJobUC.UpdateNotes(c.Request.Context(), req.UserID, jobID, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notes updated", saved)
}

func (h *SavedJobHandler) Unsave(c *gin.Context) {
	userID, jobID, err := savedJobParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.savedJobUC.UnsaveJob(c.Request.Context(), userID, jobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job unsaved", nil)
}

func savedJobParams(c *gin.Context) (string, int64, error) {
	userID := c.Query("user_id")
	if userID == "" {
		return "", 0, apperror.BadRequest("user_id query parameter is required")
	}
	jobID, err := strconv.ParseInt(c.Param("jobID"), 10, 64)
	if err != nil {
		return "", 0, apperror.BadRequest("Invalid job ID")
	}
	return userID, jobID, nil
}
