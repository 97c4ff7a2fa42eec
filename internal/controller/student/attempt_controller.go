package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/service"
)

// Controller exposes the student-facing attempt endpoints.
type Controller struct {
	attemptSvc service.AttemptService
}

func NewController(attemptSvc service.AttemptService) *Controller {
	return &Controller{attemptSvc: attemptSvc}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	aptitude := router.Group("/api/v1/student/aptitude")
	{
		aptitude.POST("/start", ctrl.StartAssessmentHandler)
		aptitude.GET("/active", ctrl.GetActiveAttemptHandler)
		aptitude.GET("/resume/:attempt_id", ctrl.ResumeAttemptHandler)
		aptitude.PUT("/autosave/:attempt_id", ctrl.AutosaveHandler)
		aptitude.POST("/submit/:attempt_id", ctrl.SubmitHandler)
		aptitude.GET("/attempts", ctrl.GetHistoryHandler)
		aptitude.GET("/attempts/:attempt_id", ctrl.GetAttemptDetailsHandler)
		aptitude.DELETE("/attempts/:attempt_id", ctrl.DiscardAttemptHandler)
		aptitude.GET("/dashboard", ctrl.GetDashboardHandler)
	}
}

// respondError maps service sentinels to HTTP statuses. Unknown errors
// become 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAttemptInProgress):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAlreadySubmitted):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrSessionExpired):
		c.JSON(http.StatusGone, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNoResumeAvailable),
		errors.Is(err, service.ErrResumeQuestionsUnavailable),
		errors.Is(err, service.ErrNoQuestionsAvailable):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

// StartAssessmentHandler godoc
// @Summary Start a new aptitude assessment
// @Description Composes a question set and opens an attempt. Fails with 409 while another attempt is in progress.
// @Tags aptitude
// @Accept json
// @Produce json
// @Param request body dto.StartAssessmentRequest true "Assessment configuration"
// @Success 201 {object} dto.AssessmentStartResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.ErrorResponse "An attempt is already in progress"
// @Failure 422 {object} dto.ErrorResponse "No questions could be composed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/aptitude/start [post]
func (ctrl *Controller) StartAssessmentHandler(c *gin.Context) {
	var req dto.StartAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind StartAssessmentRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.attemptSvc.StartAssessment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetActiveAttemptHandler godoc
// @Summary Get the caller's in-progress attempt
// @Description Returns the active attempt with questions in their frozen order and previously saved answers.
// @Tags aptitude
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.ActiveAssessmentResponse
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Failure 404 {object} dto.ErrorResponse "No active attempt"
// @Failure 410 {object} dto.ErrorResponse "Session expired and was auto-submitted"
// @Router /student/aptitude/active [get]
func (ctrl *Controller) GetActiveAttemptHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}

	resp, err := ctrl.attemptSvc.GetActiveAttempt(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumeAttemptHandler godoc
// @Summary Resume a specific in-progress attempt
// @Tags aptitude
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.ActiveAssessmentResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 410 {object} dto.ErrorResponse "Session expired and was auto-submitted"
// @Router /student/aptitude/resume/{attempt_id} [get]
func (ctrl *Controller) ResumeAttemptHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}

	resp, err := ctrl.attemptSvc.GetAttemptForResume(c.Param("attempt_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AutosaveHandler godoc
// @Summary Autosave answers for an in-progress attempt
// @Description Saves a partial answer map. Answers arriving past their question's deadline are dropped silently.
// @Tags aptitude
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body dto.AutoSaveAssessmentRequest true "Partial answers"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 410 {object} dto.ErrorResponse "Session expired and was auto-submitted"
// @Router /student/aptitude/autosave/{attempt_id} [put]
func (ctrl *Controller) AutosaveHandler(c *gin.Context) {
	var req dto.AutoSaveAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind AutoSaveAssessmentRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	if err := ctrl.attemptSvc.AutosaveAnswers(c.Param("attempt_id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "progress saved"})
}

// SubmitHandler godoc
// @Summary Submit an attempt for scoring
// @Description Scores the attempt once and returns the summary. Resubmission fails with 409.
// @Tags aptitude
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body dto.SubmitAssessmentRequest true "Final answers"
// @Success 200 {object} dto.AttemptSummary
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Failure 410 {object} dto.ErrorResponse "Session expired and was auto-submitted"
// @Router /student/aptitude/submit/{attempt_id} [post]
func (ctrl *Controller) SubmitHandler(c *gin.Context) {
	var req dto.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SubmitAssessmentRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	summary, err := ctrl.attemptSvc.SubmitAssessment(c.Param("attempt_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetHistoryHandler godoc
// @Summary List the caller's attempts
// @Tags aptitude
// @Produce json
// @Param user_id query string true "User ID"
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {array} dto.AttemptSummary
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Router /student/aptitude/attempts [get]
func (ctrl *Controller) GetHistoryHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	summaries, err := ctrl.attemptSvc.GetTestHistory(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetAttemptDetailsHandler godoc
// @Summary Review a completed attempt question by question
// @Tags aptitude
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt still in progress"
// @Router /student/aptitude/attempts/{attempt_id} [get]
func (ctrl *Controller) GetAttemptDetailsHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}

	resp, err := ctrl.attemptSvc.GetAttemptDetails(c.Param("attempt_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DiscardAttemptHandler godoc
// @Summary Discard an in-progress attempt
// @Description Deletes the attempt and its saved answers. Completed attempts cannot be discarded.
// @Tags aptitude
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param user_id query string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /student/aptitude/attempts/{attempt_id} [delete]
func (ctrl *Controller) DiscardAttemptHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}

	if err := ctrl.attemptSvc.DiscardAttempt(c.Param("attempt_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attempt discarded"})
}

// GetDashboardHandler godoc
// @Summary Aptitude performance overview
// @Tags aptitude
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.StudentAptitudeDashboard
// @Failure 400 {object} dto.ErrorResponse "Missing user_id"
// @Router /student/aptitude/dashboard [get]
func (ctrl *Controller) GetDashboardHandler(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id is required"})
		return
	}

	resp, err := ctrl.attemptSvc.GetDashboard(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
