package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizgem/internal/dto"
	"quizgem/internal/middleware"
	"quizgem/internal/service"
)

type QuizController struct {
	quizService    service.QuizService
	gameService    service.GameService
	summaryService service.SummaryService
}

func NewQuizController(quizService service.QuizService, gameService service.GameService, summaryService service.SummaryService) *QuizController {
	return &QuizController{
		quizService:    quizService,
		gameService:    gameService,
		summaryService: summaryService,
	}
}

// respondError maps typed service errors to HTTP statuses. Anything unmapped
// is an opaque 500; details stay in the logs.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthenticated"})
	case errors.Is(err, service.ErrQuestionAnswered):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrContentBlocked), errors.Is(err, service.ErrGenerationFailed):
		ctx.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: "Failed to generate quiz"})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unhandled service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

// CreateQuiz godoc
// @Summary Generate and persist a new quiz
// @Tags Quiz
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Topic and question amount"
// @Success 201 {object} dto.DataResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 502 {object} dto.ErrorResponse "Model output never validated"
// @Router /quiz [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req dto.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quiz, err := c.quizService.Create(ctx.Request.Context(), req.Topic, req.Amount)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{
		Data:        quiz,
		Message:     fmt.Sprintf("%d question about %s successfully created", quiz.Amount, quiz.Topic),
		AccessToken: ctx.GetString(middleware.ContextAccessToken),
	})
}

// GetAllQuizzes godoc
// @Summary List all quizzes
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.QuizSummary
// @Router /quiz [get]
func (c *QuizController) GetAllQuizzes(ctx *gin.Context) {
	quizzes, err := c.quizService.GetAll()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary Get one quiz by id
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizSummary
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.quizService.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// StartOrContinue godoc
// @Summary Start a new game or continue the open one
// @Tags Game
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/{id}/startOrContinue [get]
func (c *QuizController) StartOrContinue(ctx *gin.Context) {
	game, err := c.gameService.StartOrContinue(ctx.Param("id"), ctx.GetString(middleware.ContextAccountID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse{
		Data:        game,
		Message:     fmt.Sprintf("quiz about %s with id %s successfully started", game.Topic, game.GameID),
		AccessToken: ctx.GetString(middleware.ContextAccessToken),
	})
}

// AnswerQuiz godoc
// @Summary Submit an answer for the current game
// @Tags Game
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.AnswerQuizRequest true "Game, question and submitted answer"
// @Success 201 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse "No open game or question"
// @Failure 409 {object} dto.ErrorResponse "Question already answered"
// @Router /quiz/{id}/answer [post]
func (c *QuizController) AnswerQuiz(ctx *gin.Context) {
	var req dto.AnswerQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	answer, err := c.gameService.Answer(req.GameID, ctx.Param("id"), req.QuestionID, req.Answer, ctx.GetString(middleware.ContextAccountID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{
		Data:        answer,
		Message:     fmt.Sprintf("question %s successfully answered", req.QuestionID),
		AccessToken: ctx.GetString(middleware.ContextAccessToken),
	})
}

// FinishQuiz godoc
// @Summary Finish the current game and compute its score
// @Tags Game
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.FinishQuizRequest true "Game to finish"
// @Success 201 {object} dto.DataResponse
// @Failure 404 {object} dto.ErrorResponse "No open game"
// @Router /quiz/{id}/finish [post]
func (c *QuizController) FinishQuiz(ctx *gin.Context) {
	var req dto.FinishQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.gameService.Finish(req.GameID, ctx.Param("id"), ctx.GetString(middleware.ContextAccountID))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.DataResponse{
		Data:        result,
		Message:     fmt.Sprintf("quiz about %s with id %s successfully finished", result.Topic, result.GameID),
		AccessToken: ctx.GetString(middleware.ContextAccessToken),
	})
}

// GetSummary godoc
// @Summary Ranked summary of the caller's finished games for a quiz
// @Tags Game
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quiz/{id}/summary [get]
func (c *QuizController) GetSummary(ctx *gin.Context) {
	summary, err := c.summaryService.Summarize(ctx.Param("id"), ctx.GetString(middleware.ContextAccountID))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// GetTopics godoc
// @Summary List distinct quiz topics with counts
// @Tags Quiz
// @Produce json
// @Success 200 {array} dto.TopicCount
// @Router /quiz/find/topics [get]
func (c *QuizController) GetTopics(ctx *gin.Context) {
	topics, err := c.quizService.Topics()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, topics)
}
