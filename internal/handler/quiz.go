package handler // handler package contains the quiz CRUD and gameplay handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge-go/internal/model"
	"github.com/quizforge/quizforge-go/internal/queue"
	"github.com/quizforge/quizforge-go/internal/repository"
	"github.com/quizforge/quizforge-go/internal/service"
)

// QuizHandler bundles the quiz store and the AI generator for all
// /v1/quizzes endpoints.
type QuizHandler struct {
	Quizzes repository.QuizStore
	AI      *service.AIGenerator
}

func NewQuizHandler(quizzes repository.QuizStore, ai *service.AIGenerator) *QuizHandler {
	return &QuizHandler{Quizzes: quizzes, AI: ai}
}

// ----- DTOs -----

type answerReq struct {
	ID        uint64 `json:"id"`
	Text      string `json:"text" validate:"required,max=500"`
	IsCorrect bool   `json:"isCorrect"`
}

type questionReq struct {
	ID      uint64      `json:"id"`
	Text    string      `json:"text" validate:"required,max=1000"`
	Answers []answerReq `json:"answers" validate:"required,min=2,dive"`
}

type createQuizReq struct {
	Title       string        `json:"title" validate:"required,max=255"`
	Description string        `json:"description"`
	IsPublished *bool         `json:"isPublished"`
	Questions   []questionReq `json:"questions" validate:"omitempty,dive"`
}

// updateQuizReq mirrors createQuizReq with every field optional.  Pointer
// fields keep "absent" distinct from an explicit empty string or false, so
// a PUT can unpublish a quiz without clearing its title.
type updateQuizReq struct {
	Title       *string       `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string       `json:"description"`
	IsPublished *bool         `json:"isPublished"`
	Questions   []questionReq `json:"questions" validate:"omitempty,dive"`
}

type submitReq struct {
	Answers []model.SubmittedAnswer `json:"answers"`
}

type generateReq struct {
	Theme string `json:"theme" validate:"required"`
	Count int    `json:"count" validate:"required,min=1,max=10"`
}

func toQuestionInputs(in []questionReq) []model.QuestionInput {
	if in == nil {
		return nil
	}
	out := make([]model.QuestionInput, len(in))
	for i, q := range in {
		answers := make([]model.AnswerInput, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = model.AnswerInput{ID: a.ID, Text: a.Text, IsCorrect: a.IsCorrect}
		}
		out[i] = model.QuestionInput{ID: q.ID, Text: q.Text, Answers: answers}
	}
	return out
}

// parseQuizID reads the :id path parameter.
func parseQuizID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// Create handles POST /v1/quizzes and records the caller as the author.
func (h *QuizHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createQuizReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}

	quiz, err := h.Quizzes.Create(c.Request().Context(), model.CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
		Questions:   toQuestionInputs(req.Questions),
	}, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create quiz"})
	}
	return c.JSON(http.StatusCreated, quiz)
}

// List handles GET /v1/quizzes: the public listing, published quizzes only.
func (h *QuizHandler) List(c echo.Context) error {
	quizzes, err := h.Quizzes.FindPublished(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list quizzes failed"})
	}
	return c.JSON(http.StatusOK, quizzes)
}

// Mine handles GET /v1/quizzes/mine: the caller's quizzes, drafts included.
func (h *QuizHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	quizzes, err := h.Quizzes.FindByAuthor(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list quizzes failed"})
	}
	return c.JSON(http.StatusOK, quizzes)
}

// All handles GET /v1/quizzes/all: every quiz, for any authenticated user.
func (h *QuizHandler) All(c echo.Context) error {
	quizzes, err := h.Quizzes.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list quizzes failed"})
	}
	return c.JSON(http.StatusOK, quizzes)
}

// Get handles GET /v1/quizzes/:id.
func (h *QuizHandler) Get(c echo.Context) error {
	id, err := parseQuizID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	quiz, err := h.Quizzes.FindOne(c.Request().Context(), id)
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Play handles GET /v1/quizzes/:id/play, the same quiz with every
// correctness flag stripped.
func (h *QuizHandler) Play(c echo.Context) error {
	id, err := parseQuizID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	quiz, err := h.Quizzes.FindOneForPlay(c.Request().Context(), id)
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Submit handles POST /v1/quizzes/:id/submit: score the submission and
// return the per-question breakdown.  A quiz.submitted event goes to the
// broker afterwards; publishing runs detached because a scored result must
// not depend on broker availability.
func (h *QuizHandler) Submit(c echo.Context) error {
	id, err := parseQuizID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	quiz, err := h.Quizzes.FindOne(c.Request().Context(), id)
	if err != nil {
		return quizError(c, err)
	}
	result := service.Score(quiz, req.Answers)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishQuizSubmitted(ctx, queue.QuizSubmittedEvent{
			QuizID:         quiz.ID,
			Title:          quiz.Title,
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			Score:          result.Score,
			SubmittedAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}()

	return c.JSON(http.StatusOK, result)
}

// Update handles PUT /v1/quizzes/:id.  Only the author may update; the
// ownership check runs after existence, so a missing quiz is a 404 and a
// foreign one a 403.
func (h *QuizHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseQuizID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	owner, err := h.Quizzes.IsOwner(c.Request().Context(), id, uid)
	if err != nil {
		return quizError(c, err)
	}
	if !owner {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to modify this quiz"})
	}

	var req updateQuizReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}

	quiz, err := h.Quizzes.Update(c.Request().Context(), id, model.UpdateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublished: req.IsPublished,
		Questions:   toQuestionInputs(req.Questions),
	})
	if err != nil {
		return quizError(c, err)
	}
	return c.JSON(http.StatusOK, quiz)
}

// Delete handles DELETE /v1/quizzes/:id, owner only.
func (h *QuizHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseQuizID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	owner, err := h.Quizzes.IsOwner(c.Request().Context(), id, uid)
	if err != nil {
		return quizError(c, err)
	}
	if !owner {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not allowed to delete this quiz"})
	}

	if err := h.Quizzes.Remove(c.Request().Context(), id); err != nil {
		return quizError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Generate handles POST /v1/quizzes/generate-questions: proxy the theme to
// the completion API and return validated question objects.  An upstream
// 429 passes through with its retry hint; everything else is a 500.
func (h *QuizHandler) Generate(c echo.Context) error {
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed: " + err.Error()})
	}

	questions, err := h.AI.GenerateQuestions(c.Request().Context(), req.Theme, req.Count)
	if err != nil {
		var rle *service.RateLimitError
		if errors.As(err, &rle) {
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":      "rate limit reached, please try again shortly",
				"retryAfter": rle.RetryAfter,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not generate questions, please try again"})
	}
	return c.JSON(http.StatusOK, echo.Map{"questions": questions})
}

// quizError maps store errors to responses: QuizNotFoundError keeps its
// message (it names the id), anything else is a generic 500.
func quizError(c echo.Context, err error) error {
	var nf *repository.QuizNotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "quiz store error"})
}
