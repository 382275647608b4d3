package domain

import (
	"fmt"
	"time"
)

// Difficulty levels accepted for generated quizzes. Free-text values are
// passed through to the model verbatim; these are the ones the UI offers.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	// OptionsPerQuestion is the fixed number of answer options a question carries.
	OptionsPerQuestion = 4

	MinQuestionCount = 5
	MaxQuestionCount = 20

	MinTimeLimit     = 5
	MaxTimeLimit     = 60
	DefaultTimeLimit = 20
)

// Question is a single multiple-choice question. The JSON tags match the
// payload the generative model is instructed to emit, and the shape in which
// questions are persisted on the Quiz entity.
type Question struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuizContent is the full question payload of a quiz.
type QuizContent struct {
	Questions []Question `json:"questions"`
}

// Validate checks the structural invariants of generated content: a non-empty
// question list, exactly four options per question, and a correct-answer
// index within range.
func (c *QuizContent) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("quiz content has no questions")
	}
	for i, q := range c.Questions {
		if q.Text == "" {
			return fmt.Errorf("question %d has empty text", i)
		}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("question %d has %d options, want %d", i, len(q.Options), OptionsPerQuestion)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionsPerQuestion {
			return fmt.Errorf("question %d has correct answer index %d out of range", i, q.CorrectAnswer)
		}
	}
	return nil
}

// AnswerSet maps a 0-based question key ("q0", "q1", ...) to the selected
// option index. Unanswered questions are simply absent.
type AnswerSet map[string]int

// AnswerKey returns the map key for the question at the given index.
func AnswerKey(index int) string {
	return fmt.Sprintf("q%d", index)
}

// Quiz is the persisted quiz entity. Questions holds the serialized
// QuizContent JSON exactly as generated or authored.
type Quiz struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Questions     string    `json:"questions"`
	StudentID     string    `json:"student_id"`
	TeacherID     string    `json:"teacher_id,omitempty"`
	IsAIGenerated bool      `json:"is_ai_generated"`
	TimeLimit     int       `json:"time_limit"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizResult is the persisted outcome of a single submission. A new result is
// created per submission; results are never updated.
type QuizResult struct {
	ID               string
	QuizID           string
	StudentID        string
	Score            int
	TotalQuestions   int
	Answers          string
	Strengths        []string
	Weaknesses       []string
	DetailedAnalysis string
	CompletedAt      time.Time
}

// Student is the thin identity the quiz flows need; account management lives
// elsewhere.
type Student struct {
	ID       string
	Username string
	FullName string
}
