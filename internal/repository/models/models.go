package models

import (
	"database/sql"
	"time"
)

// Quiz is the quizzes table row. Questions holds the serialized question
// payload as CLOB.
type Quiz struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   sql.NullString `db:"description"`
	Questions     string         `db:"questions"`
	StudentID     sql.NullString `db:"student_id"`
	TeacherID     sql.NullString `db:"teacher_id"`
	IsAIGenerated int            `db:"is_ai_generated"`
	TimeLimit     sql.NullInt64  `db:"time_limit"`
	CreatedAt     time.Time      `db:"created_at"`
}

// QuizResult is the quiz_results table row. Strengths and Weaknesses are
// sentinel-delimited text; the repository joins and splits them.
type QuizResult struct {
	ID               string         `db:"id"`
	QuizID           string         `db:"quiz_id"`
	StudentID        string         `db:"student_id"`
	Score            int            `db:"score"`
	TotalQuestions   int            `db:"total_questions"`
	Answers          sql.NullString `db:"answers"`
	Strengths        sql.NullString `db:"strengths"`
	Weaknesses       sql.NullString `db:"weaknesses"`
	DetailedAnalysis sql.NullString `db:"detailed_analysis"`
	CompletedAt      time.Time      `db:"completed_at"`
}

// Student is the students table row.
type Student struct {
	ID       string         `db:"id"`
	Username string         `db:"username"`
	FullName sql.NullString `db:"full_name"`
}
