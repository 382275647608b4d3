package repository

import (
	"database/sql"
	"fmt"

	"mentorlab/internal/domain"
	"mentorlab/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const quizColumns = `
	id "id",
	title "title",
	description "description",
	questions "questions",
	student_id "student_id",
	teacher_id "teacher_id",
	is_ai_generated "is_ai_generated",
	time_limit "time_limit",
	created_at "created_at"`

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(quiz *domain.Quiz) error {
	if quiz == nil {
		return fmt.Errorf("quiz cannot be nil")
	}

	query := `INSERT INTO quizzes
		(id, title, description, questions, student_id, teacher_id, is_ai_generated, time_limit, created_at)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`

	isAI := 0
	if quiz.IsAIGenerated {
		isAI = 1
	}

	_, err := a.db.Exec(query,
		quiz.ID,
		quiz.Title,
		nullString(quiz.Description),
		quiz.Questions,
		nullString(quiz.StudentID),
		nullString(quiz.TeacherID),
		isAI,
		quiz.TimeLimit,
		quiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(id string) (*domain.Quiz, error) {
	var row models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = :1`

	err := a.db.Get(&row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

// GetQuizzesByStudent implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizzesByStudent(studentID string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE student_id = :1 ORDER BY created_at DESC`

	if err := a.db.Select(&rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes for student %s: %w", studentID, err)
	}
	return toDomainQuizzes(rows), nil
}

// GetQuizzesByTeacher implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizzesByTeacher(teacherID string) ([]*domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE teacher_id = :1 ORDER BY created_at DESC`

	if err := a.db.Select(&rows, query, teacherID); err != nil {
		return nil, fmt.Errorf("failed to get quizzes for teacher %s: %w", teacherID, err)
	}
	return toDomainQuizzes(rows), nil
}

func toDomainQuiz(row *models.Quiz) *domain.Quiz {
	return &domain.Quiz{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description.String,
		Questions:     row.Questions,
		StudentID:     row.StudentID.String,
		TeacherID:     row.TeacherID.String,
		IsAIGenerated: row.IsAIGenerated != 0,
		TimeLimit:     int(row.TimeLimit.Int64),
		CreatedAt:     row.CreatedAt,
	}
}

func toDomainQuizzes(rows []models.Quiz) []*domain.Quiz {
	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
