package domain

import "context"

// GenerationParams are the decoding parameters passed to the generative API.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
}

// TextGenerator produces raw model text for a prompt. Implementations own
// model selection, fallback and pacing; callers only see the final text or a
// terminal failure.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// SaveQuiz persists a new quiz
	SaveQuiz(quiz *Quiz) error

	// GetQuizByID retrieves a quiz by its ID; returns nil when absent
	GetQuizByID(id string) (*Quiz, error)

	// GetQuizzesByStudent returns quizzes assigned to or generated for a student
	GetQuizzesByStudent(studentID string) ([]*Quiz, error)

	// GetQuizzesByTeacher returns quizzes authored by a teacher
	GetQuizzesByTeacher(teacherID string) ([]*Quiz, error)
}

// QuizResultRepository defines the interface for result persistence
type QuizResultRepository interface {
	// SaveResult persists a new result; results are write-once
	SaveResult(result *QuizResult) error

	// GetResultsByStudent returns a student's results, most recent first
	GetResultsByStudent(studentID string) ([]*QuizResult, error)
}

// StudentRepository defines the interface for student lookups
type StudentRepository interface {
	// GetStudentByID retrieves a student by ID; returns nil when absent
	GetStudentByID(id string) (*Student, error)
}

// QuizCache is a read-through cache for quiz entities keyed by quiz ID.
// A miss is reported as a nil quiz with a nil error.
type QuizCache interface {
	GetQuiz(ctx context.Context, quizID string) (*Quiz, error)
	SetQuiz(ctx context.Context, quiz *Quiz) error
}
