package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorlab/internal/domain"
	"mentorlab/internal/dto"
	"mentorlab/internal/genai"
	"mentorlab/internal/logger"
	"mentorlab/internal/util"

	"go.uber.org/zap"
)

// generationParams are the decoding parameters for quiz generation, tuned
// low for consistent JSON output.
var generationParams = domain.GenerationParams{
	Temperature:     0.4,
	MaxOutputTokens: 4000,
	TopP:            0.8,
	TopK:            40,
}

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, studentID string, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error)
	CreateManualQuiz(teacherID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, studentID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetStudentQuizzes(studentID string) ([]*dto.QuizSummary, error)
	GetStudentResults(studentID string) ([]*dto.QuizResultResponse, error)
}

// quizService implements QuizService
type quizService struct {
	quizRepo    domain.QuizRepository
	resultRepo  domain.QuizResultRepository
	studentRepo domain.StudentRepository
	generator   domain.TextGenerator
	cache       domain.QuizCache
}

// NewQuizService creates a new instance of quizService. cache may be nil when
// Redis is not configured.
func NewQuizService(
	quizRepo domain.QuizRepository,
	resultRepo domain.QuizResultRepository,
	studentRepo domain.StudentRepository,
	generator domain.TextGenerator,
	cache domain.QuizCache,
) QuizService {
	return &quizService{
		quizRepo:    quizRepo,
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		generator:   generator,
		cache:       cache,
	}
}

func buildGenerationPrompt(topic, difficulty string, questionCount int) string {
	return fmt.Sprintf(
		"Generate a quiz with exactly %d multiple choice questions about '%s' at '%s' difficulty level.\n\n"+
			"CRITICAL: Return ONLY pure JSON with NO markdown, NO explanations, NO code blocks.\n\n"+
			"Format (use this EXACT structure):\n"+
			`{"questions":[{"question":"text","options":["a","b","c","d"],"correctAnswer":0,"explanation":"text"}]}`+"\n\n"+
			"Rules:\n"+
			"- correctAnswer must be 0, 1, 2, or 3 (index of correct option)\n"+
			"- Keep questions concise (under 100 characters)\n"+
			"- Keep options concise (under 50 characters each)\n"+
			"- Keep explanations brief (under 100 characters)\n"+
			"- Use double quotes for all strings\n"+
			"- Start response with { and end with }\n"+
			"- No trailing commas",
		questionCount, topic, difficulty,
	)
}

// fallbackQuiz is the synthetic single-question quiz returned when the
// generative API cannot produce usable content. Callers always get a quiz.
func fallbackQuiz(topic string) *domain.QuizContent {
	return &domain.QuizContent{
		Questions: []domain.Question{
			{
				Text:          fmt.Sprintf("Sample question about %s (AI service temporarily unavailable)", topic),
				Options:       []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectAnswer: 0,
				Explanation:   "This is a fallback question. The AI quiz generation service is temporarily unavailable. Please try again later.",
			},
		},
	}
}

// generateContent produces validated quiz content for the given topic. Every
// failure path resolves to the fallback quiz; the second return value reports
// whether the provider quota was the reason.
func (s *quizService) generateContent(ctx context.Context, topic, difficulty string, questionCount int) (*domain.QuizContent, bool) {
	l := logger.Get()

	raw, err := s.generator.Generate(ctx, buildGenerationPrompt(topic, difficulty, questionCount), generationParams)
	if err != nil {
		if genai.IsRateLimited(err) {
			l.Warn("Quiz generation rate limited, returning fallback quiz", zap.String("topic", topic))
			return fallbackQuiz(topic), true
		}
		l.Warn("Quiz generation failed on all models, returning fallback quiz",
			zap.String("topic", topic),
			zap.Error(err))
		return fallbackQuiz(topic), false
	}

	cleaned := genai.Sanitize(raw)

	var content domain.QuizContent
	if err := json.Unmarshal([]byte(cleaned), &content); err != nil {
		l.Warn("Generated quiz is not valid JSON, returning fallback quiz",
			zap.String("topic", topic),
			zap.Error(err),
			zap.String("response", truncate(cleaned, 200)))
		return fallbackQuiz(topic), false
	}
	if err := content.Validate(); err != nil {
		l.Warn("Generated quiz failed validation, returning fallback quiz",
			zap.String("topic", topic),
			zap.Error(err))
		return fallbackQuiz(topic), false
	}

	l.Info("Quiz generated",
		zap.String("topic", topic),
		zap.Int("questions", len(content.Questions)))
	return &content, false
}

// GenerateQuiz implements QuizService. The request is assumed to be
// normalized by the handler; generation never fails outright, at worst the
// persisted quiz carries the fallback question.
func (s *quizService) GenerateQuiz(ctx context.Context, studentID string, req *dto.GenerateQuizRequest) (*dto.QuizResponse, error) {
	student, err := s.studentRepo.GetStudentByID(studentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load student", err)
	}
	if student == nil {
		return nil, domain.NewStudentNotFoundError(studentID)
	}

	content, rateLimited := s.generateContent(ctx, req.Topic, req.Difficulty, req.QuestionCount)

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, domain.NewInternalError("Failed to serialize quiz content", err)
	}

	quiz := &domain.Quiz{
		ID:            util.NewULID(),
		Title:         "AI Generated Quiz: " + req.Topic,
		Description:   fmt.Sprintf("Auto-generated quiz on %s (%s difficulty)", req.Topic, req.Difficulty),
		Questions:     string(payload),
		StudentID:     studentID,
		IsAIGenerated: true,
		TimeLimit:     req.TimeLimit,
		CreatedAt:     time.Now(),
	}

	if err := s.quizRepo.SaveQuiz(quiz); err != nil {
		return nil, domain.NewStorageError("Failed to save quiz", err)
	}
	s.cacheQuiz(ctx, quiz)

	resp := toQuizResponse(quiz, content)
	resp.RateLimited = rateLimited
	return resp, nil
}

// CreateManualQuiz implements QuizService
func (s *quizService) CreateManualQuiz(teacherID string, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if req.Title == "" {
		return nil, domain.NewInvalidInputError("title is required")
	}

	content := &domain.QuizContent{Questions: req.Questions}
	if err := content.Validate(); err != nil {
		return nil, domain.NewInvalidInputError(err.Error())
	}

	timeLimit := req.TimeLimit
	if timeLimit < domain.MinTimeLimit || timeLimit > domain.MaxTimeLimit {
		timeLimit = domain.DefaultTimeLimit
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, domain.NewInternalError("Failed to serialize quiz content", err)
	}

	quiz := &domain.Quiz{
		ID:          util.NewULID(),
		Title:       req.Title,
		Description: req.Description,
		Questions:   string(payload),
		StudentID:   req.StudentID,
		TeacherID:   teacherID,
		TimeLimit:   timeLimit,
		CreatedAt:   time.Now(),
	}

	if err := s.quizRepo.SaveQuiz(quiz); err != nil {
		return nil, domain.NewStorageError("Failed to save quiz", err)
	}
	s.cacheQuiz(context.Background(), quiz)

	return toQuizResponse(quiz, content), nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, quizID string) (*dto.QuizResponse, error) {
	quiz, content, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return toQuizResponse(quiz, content), nil
}

// SubmitQuiz implements QuizService. The numeric score is always computed and
// persisted; qualitative feedback may degrade to a placeholder without
// failing the submission.
func (s *quizService) SubmitQuiz(ctx context.Context, studentID, quizID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, content, err := s.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	answers := domain.AnswerSet(req.Answers)
	score, total := Grade(content, answers)

	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, domain.NewInternalError("Failed to serialize answers", err)
	}

	feedback, degraded, rateLimited := s.analyzeResults(ctx, quiz.Questions, string(answersJSON))

	result := &domain.QuizResult{
		ID:               util.NewULID(),
		QuizID:           quiz.ID,
		StudentID:        studentID,
		Score:            score,
		TotalQuestions:   total,
		Answers:          string(answersJSON),
		Strengths:        feedback.Strengths,
		Weaknesses:       feedback.Weaknesses,
		DetailedAnalysis: feedback.Analysis,
		CompletedAt:      time.Now(),
	}

	if err := s.resultRepo.SaveResult(result); err != nil {
		return nil, domain.NewStorageError("Failed to save quiz result", err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("quiz_id", quiz.ID),
		zap.String("student_id", studentID),
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Bool("feedback_degraded", degraded))

	return &dto.SubmitQuizResponse{
		ResultID:            result.ID,
		Score:               score,
		TotalQuestions:      total,
		Strengths:           result.Strengths,
		Weaknesses:          result.Weaknesses,
		Analysis:            result.DetailedAnalysis,
		FeedbackUnavailable: degraded,
		RateLimited:         rateLimited,
	}, nil
}

// GetStudentQuizzes implements QuizService
func (s *quizService) GetStudentQuizzes(studentID string) ([]*dto.QuizSummary, error) {
	quizzes, err := s.quizRepo.GetQuizzesByStudent(studentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}

	summaries := make([]*dto.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, &dto.QuizSummary{
			ID:            q.ID,
			Title:         q.Title,
			Description:   q.Description,
			TimeLimit:     q.TimeLimit,
			IsAIGenerated: q.IsAIGenerated,
			CreatedAt:     q.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}

// GetStudentResults implements QuizService
func (s *quizService) GetStudentResults(studentID string) ([]*dto.QuizResultResponse, error) {
	results, err := s.resultRepo.GetResultsByStudent(studentID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz results", err)
	}

	responses := make([]*dto.QuizResultResponse, 0, len(results))
	for _, r := range results {
		responses = append(responses, &dto.QuizResultResponse{
			ID:             r.ID,
			QuizID:         r.QuizID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Strengths:      r.Strengths,
			Weaknesses:     r.Weaknesses,
			Analysis:       r.DetailedAnalysis,
			CompletedAt:    r.CompletedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

// loadQuiz fetches a quiz through the cache and parses its stored content.
// A quiz whose payload no longer parses is reported as malformed; that is a
// hard error, the stored quiz itself is corrupt.
func (s *quizService) loadQuiz(ctx context.Context, quizID string) (*domain.Quiz, *domain.QuizContent, error) {
	var quiz *domain.Quiz

	if s.cache != nil {
		cached, err := s.cache.GetQuiz(ctx, quizID)
		if err != nil {
			logger.Get().Warn("Quiz cache read failed", zap.Error(err), zap.String("quiz_id", quizID))
		} else if cached != nil {
			quiz = cached
		}
	}

	if quiz == nil {
		fetched, err := s.quizRepo.GetQuizByID(quizID)
		if err != nil {
			return nil, nil, domain.NewInternalError("Failed to get quiz", err)
		}
		if fetched == nil {
			return nil, nil, domain.NewQuizNotFoundError(quizID)
		}
		quiz = fetched
		s.cacheQuiz(ctx, quiz)
	}

	var content domain.QuizContent
	if err := json.Unmarshal([]byte(quiz.Questions), &content); err != nil {
		return nil, nil, domain.NewMalformedQuizError(quizID, err)
	}
	return quiz, &content, nil
}

// cacheQuiz stores a quiz in the cache on a best-effort basis.
func (s *quizService) cacheQuiz(ctx context.Context, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetQuiz(ctx, quiz); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.Error(err), zap.String("quiz_id", quiz.ID))
	}
}

func toQuizResponse(quiz *domain.Quiz, content *domain.QuizContent) *dto.QuizResponse {
	views := make([]dto.QuestionView, 0, len(content.Questions))
	for _, q := range content.Questions {
		views = append(views, dto.QuestionView{
			Question: q.Text,
			Options:  q.Options,
		})
	}
	return &dto.QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		TimeLimit:     quiz.TimeLimit,
		IsAIGenerated: quiz.IsAIGenerated,
		Questions:     views,
	}
}
