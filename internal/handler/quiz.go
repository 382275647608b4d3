package handler

import (
	"mentorlab/internal/dto"
	"mentorlab/internal/middleware"
	"mentorlab/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

func callerID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	return id
}

// GenerateQuiz godoc
// @Summary Generate an AI quiz
// @Description Generates a quiz for the authenticated student. Always returns a usable quiz; a fallback question is substituted when the AI service is unavailable.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation parameters"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}
	if req.Topic == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "topic is required",
		})
	}

	// Bounds are enforced here, before the generator sees the request.
	req.Normalize()

	quiz, err := h.service.GenerateQuiz(c.Context(), callerID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// CreateQuiz godoc
// @Summary Create a manual quiz
// @Description Persists a teacher-authored quiz for a student
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz content"
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	quiz, err := h.service.CreateManualQuiz(callerID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a quiz with its questions; the answer key is stripped
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades a submission and persists the result. The score is always computed; qualitative feedback may be degraded.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.SubmitQuizRequest true "Answer set"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}
	if req.Answers == nil {
		req.Answers = map[string]int{}
	}

	result, err := h.service.SubmitQuiz(c.Context(), callerID(c), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetMyQuizzes godoc
// @Summary List my quizzes
// @Description Returns the authenticated student's quizzes, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizSummary
// @Router /students/me/quizzes [get]
func (h *QuizHandler) GetMyQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.GetStudentQuizzes(callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetMyResults godoc
// @Summary List my quiz results
// @Description Returns the authenticated student's results, most recent first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizResultResponse
// @Router /students/me/results [get]
func (h *QuizHandler) GetMyResults(c *fiber.Ctx) error {
	results, err := h.service.GetStudentResults(callerID(c))
	if err != nil {
		return err
	}
	return c.JSON(results)
}
