package dto

import "mentorlab/internal/domain"

// GenerateQuizRequest is the request body for AI quiz generation
// @Description Parameters for an AI-generated quiz
type GenerateQuizRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	TimeLimit     int    `json:"time_limit"`
}

// Normalize clamps the request to the supported bounds before it reaches the
// generator: question count to [5,20], time limit to [5,60] with 20 as the
// default for absent or out-of-range values. Difficulty falls back to medium.
func (r *GenerateQuizRequest) Normalize() {
	if r.QuestionCount < domain.MinQuestionCount {
		r.QuestionCount = domain.MinQuestionCount
	}
	if r.QuestionCount > domain.MaxQuestionCount {
		r.QuestionCount = domain.MaxQuestionCount
	}
	if r.TimeLimit < domain.MinTimeLimit || r.TimeLimit > domain.MaxTimeLimit {
		r.TimeLimit = domain.DefaultTimeLimit
	}
	if r.Difficulty == "" {
		r.Difficulty = domain.DifficultyMedium
	}
}

// CreateQuizRequest is the request body for teacher-authored quizzes
type CreateQuizRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	StudentID   string            `json:"student_id"`
	TimeLimit   int               `json:"time_limit"`
	Questions   []domain.Question `json:"questions"`
}

// SubmitQuizRequest is the request body for a quiz submission. Answers maps
// "q{n}" keys to selected option indexes; unanswered questions are omitted.
type SubmitQuizRequest struct {
	Answers map[string]int `json:"answers"`
}

// QuestionView is a question as shown to a quiz taker: the answer key and
// explanation are stripped.
type QuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizResponse represents a quiz in the API response
// @Description Quiz with its questions, answer key removed
type QuizResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	TimeLimit     int            `json:"time_limit"`
	IsAIGenerated bool           `json:"is_ai_generated"`
	Questions     []QuestionView `json:"questions"`
	// RateLimited is set when generation hit the provider quota and the quiz
	// is the synthetic fallback; the UI shows a retry hint.
	RateLimited bool `json:"rate_limited,omitempty"`
}

// QuizSummary is a quiz listing entry without the question payload
type QuizSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	TimeLimit     int    `json:"time_limit"`
	IsAIGenerated bool   `json:"is_ai_generated"`
	CreatedAt     string `json:"created_at"`
}

// SubmitQuizResponse represents a graded submission in the API response
// @Description Grading outcome with qualitative feedback when available
type SubmitQuizResponse struct {
	ResultID       string   `json:"result_id"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Analysis       string   `json:"analysis"`
	// FeedbackUnavailable is set when the qualitative feedback step degraded;
	// the numeric score is still authoritative.
	FeedbackUnavailable bool `json:"feedback_unavailable,omitempty"`
	RateLimited         bool `json:"rate_limited,omitempty"`
}

// QuizResultResponse represents a stored result in the API response
type QuizResultResponse struct {
	ID             string   `json:"id"`
	QuizID         string   `json:"quiz_id"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Analysis       string   `json:"analysis"`
	CompletedAt    string   `json:"completed_at"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
