package repository

import (
	"fmt"
	"strings"

	"mentorlab/internal/domain"
	"mentorlab/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// stringDelimiter joins strengths/weaknesses lists into a single text column.
// The delimiter is assumed never to occur inside an individual entry; see the
// round-trip test for the known corruption edge.
const stringDelimiter = "|||"

// ResultDatabaseAdapter implements domain.QuizResultRepository using sqlx.DB
type ResultDatabaseAdapter struct {
	db *sqlx.DB
}

// NewResultDatabaseAdapter creates a new instance of ResultDatabaseAdapter
func NewResultDatabaseAdapter(db *sqlx.DB) domain.QuizResultRepository {
	return &ResultDatabaseAdapter{db: db}
}

// SaveResult implements domain.QuizResultRepository
func (a *ResultDatabaseAdapter) SaveResult(result *domain.QuizResult) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	query := `INSERT INTO quiz_results
		(id, quiz_id, student_id, score, total_questions, answers, strengths, weaknesses, detailed_analysis, completed_at)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`

	_, err := a.db.Exec(query,
		result.ID,
		result.QuizID,
		result.StudentID,
		result.Score,
		result.TotalQuestions,
		nullString(result.Answers),
		nullString(strings.Join(result.Strengths, stringDelimiter)),
		nullString(strings.Join(result.Weaknesses, stringDelimiter)),
		nullString(result.DetailedAnalysis),
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz result %s: %w", result.ID, err)
	}
	return nil
}

// GetResultsByStudent implements domain.QuizResultRepository
func (a *ResultDatabaseAdapter) GetResultsByStudent(studentID string) ([]*domain.QuizResult, error) {
	var rows []models.QuizResult
	query := `SELECT
		id "id",
		quiz_id "quiz_id",
		student_id "student_id",
		score "score",
		total_questions "total_questions",
		answers "answers",
		strengths "strengths",
		weaknesses "weaknesses",
		detailed_analysis "detailed_analysis",
		completed_at "completed_at"
	FROM quiz_results
	WHERE student_id = :1
	ORDER BY completed_at DESC`

	if err := a.db.Select(&rows, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to get results for student %s: %w", studentID, err)
	}

	results := make([]*domain.QuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, toDomainResult(&rows[i]))
	}
	return results, nil
}

func toDomainResult(row *models.QuizResult) *domain.QuizResult {
	return &domain.QuizResult{
		ID:               row.ID,
		QuizID:           row.QuizID,
		StudentID:        row.StudentID,
		Score:            row.Score,
		TotalQuestions:   row.TotalQuestions,
		Answers:          row.Answers.String,
		Strengths:        splitDelimited(row.Strengths.String),
		Weaknesses:       splitDelimited(row.Weaknesses.String),
		DetailedAnalysis: row.DetailedAnalysis.String,
		CompletedAt:      row.CompletedAt,
	}
}

func splitDelimited(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, stringDelimiter)
}
