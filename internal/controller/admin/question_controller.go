package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/placeprep/backend/internal/dto"
	"github.com/placeprep/backend/internal/model"
	"github.com/placeprep/backend/internal/repository"
	"github.com/placeprep/backend/internal/service"
)

// Controller exposes the admin question-bank endpoints.
type Controller struct {
	questionSvc service.QuestionService
}

func NewController(questionSvc service.QuestionService) *Controller {
	return &Controller{questionSvc: questionSvc}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	questions := router.Group("/api/v1/admin/aptitude/questions")
	{
		questions.POST("", ctrl.CreateQuestionHandler)
		questions.GET("", ctrl.ListQuestionsHandler)
		questions.GET("/:id", ctrl.GetQuestionHandler)
		questions.PUT("/:id", ctrl.UpdateQuestionHandler)
		questions.POST("/:id/review", ctrl.ReviewQuestionHandler)
		questions.DELETE("/:id", ctrl.DeleteQuestionHandler)
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

// CreateQuestionHandler godoc
// @Summary Create a bank question
// @Description Adds a question in PENDING approval state. Only approved questions can enter attempts.
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param request body dto.CreateQuestionRequest true "Question data"
// @Param created_by query string false "Author user ID"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /admin/aptitude/questions [post]
func (ctrl *Controller) CreateQuestionHandler(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CreateQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	var createdBy *string
	if author := c.Query("created_by"); author != "" {
		createdBy = &author
	}

	resp, err := ctrl.questionSvc.CreateQuestion(req, createdBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListQuestionsHandler godoc
// @Summary List bank questions
// @Tags admin-questions
// @Produce json
// @Param category query string false "Filter by category"
// @Param difficulty query string false "Filter by difficulty"
// @Param approval_status query string false "Filter by approval status"
// @Param search query string false "Substring match on question text"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.QuestionListResponse
// @Router /admin/aptitude/questions [get]
func (ctrl *Controller) ListQuestionsHandler(c *gin.Context) {
	filter := repository.QuestionFilter{
		Search: c.Query("search"),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	if raw := c.Query("category"); raw != "" {
		category := model.AptitudeCategory(raw)
		filter.Category = &category
	}
	if raw := c.Query("difficulty"); raw != "" {
		difficulty := model.DifficultyLevel(raw)
		filter.Difficulty = &difficulty
	}
	if raw := c.Query("approval_status"); raw != "" {
		approval := model.ApprovalStatus(raw)
		filter.Approval = &approval
	}

	resp, err := ctrl.questionSvc.ListQuestions(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuestionHandler godoc
// @Summary Get a bank question by ID
// @Tags admin-questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/aptitude/questions/{id} [get]
func (ctrl *Controller) GetQuestionHandler(c *gin.Context) {
	resp, err := ctrl.questionSvc.GetQuestion(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuestionHandler godoc
// @Summary Update a bank question
// @Description Bumps the version and moves the question back to PENDING review.
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/aptitude/questions/{id} [put]
func (ctrl *Controller) UpdateQuestionHandler(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind UpdateQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.questionSvc.UpdateQuestion(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewQuestionHandler godoc
// @Summary Approve or reject a pending question
// @Tags admin-questions
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.ReviewQuestionRequest true "Review decision"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/aptitude/questions/{id}/review [post]
func (ctrl *Controller) ReviewQuestionHandler(c *gin.Context) {
	var req dto.ReviewQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ReviewQuestionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	resp, err := ctrl.questionSvc.ReviewQuestion(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary Retire a bank question
// @Description Soft-deletes the question; completed attempts keep their copies.
// @Tags admin-questions
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/aptitude/questions/{id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	if err := ctrl.questionSvc.DeleteQuestion(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question retired"})
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
