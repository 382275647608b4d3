package repository

import (
	"database/sql"
	"testing"
	"time"

	"mentorlab/internal/domain"
	"mentorlab/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var quizRowColumns = []string{
	"id", "title", "description", "questions",
	"student_id", "teacher_id", "is_ai_generated", "time_limit", "created_at",
}

func TestSaveQuiz(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	quiz := &domain.Quiz{
		ID:            util.NewULID(),
		Title:         "AI Generated Quiz: Algebra",
		Description:   "Auto-generated quiz on Algebra (medium difficulty)",
		Questions:     `{"questions":[]}`,
		StudentID:     "student1",
		IsAIGenerated: true,
		TimeLimit:     20,
		CreatedAt:     time.Now(),
	}

	mock.ExpectExec(`INSERT INTO quizzes`).
		WithArgs(
			quiz.ID,
			quiz.Title,
			sql.NullString{String: quiz.Description, Valid: true},
			quiz.Questions,
			sql.NullString{String: quiz.StudentID, Valid: true},
			sql.NullString{}, // no teacher for an AI-generated quiz
			1,
			quiz.TimeLimit,
			quiz.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveQuiz(quiz)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveQuizNil(t *testing.T) {
	db, _ := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	err := repo.SaveQuiz(nil)
	assert.Error(t, err)
}

func TestGetQuizByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows(quizRowColumns).AddRow(
		"QUIZ1", "AI Generated Quiz: Algebra",
		sql.NullString{String: "desc", Valid: true},
		`{"questions":[]}`,
		sql.NullString{String: "student1", Valid: true},
		sql.NullString{},
		1, 20, now,
	)

	mock.ExpectQuery(`(?s)SELECT.+FROM quizzes WHERE id = :1`).
		WithArgs("QUIZ1").
		WillReturnRows(rows)

	quiz, err := repo.GetQuizByID("QUIZ1")

	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "QUIZ1", quiz.ID)
	assert.Equal(t, "AI Generated Quiz: Algebra", quiz.Title)
	assert.Equal(t, "student1", quiz.StudentID)
	assert.Empty(t, quiz.TeacherID)
	assert.True(t, quiz.IsAIGenerated)
	assert.Equal(t, 20, quiz.TimeLimit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM quizzes WHERE id = :1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	quiz, err := repo.GetQuizByID("missing")

	// Absence is not an error; the service maps nil to its not-found code.
	assert.NoError(t, err)
	assert.Nil(t, quiz)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizzesByStudent(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows(quizRowColumns).
		AddRow("Q2", "Later quiz", sql.NullString{}, `{"questions":[]}`,
			sql.NullString{String: "student1", Valid: true}, sql.NullString{}, 1, 20, now).
		AddRow("Q1", "Earlier quiz", sql.NullString{}, `{"questions":[]}`,
			sql.NullString{String: "student1", Valid: true}, sql.NullString{}, 0, 30, now.Add(-time.Hour))

	mock.ExpectQuery(`(?s)SELECT.+FROM quizzes WHERE student_id = :1 ORDER BY created_at DESC`).
		WithArgs("student1").
		WillReturnRows(rows)

	quizzes, err := repo.GetQuizzesByStudent("student1")

	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "Q2", quizzes[0].ID)
	assert.True(t, quizzes[0].IsAIGenerated)
	assert.Equal(t, "Q1", quizzes[1].ID)
	assert.False(t, quizzes[1].IsAIGenerated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizzesByTeacherEmpty(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewQuizDatabaseAdapter(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM quizzes WHERE teacher_id = :1 ORDER BY created_at DESC`).
		WithArgs("teacher1").
		WillReturnRows(sqlmock.NewRows(quizRowColumns))

	quizzes, err := repo.GetQuizzesByTeacher("teacher1")

	require.NoError(t, err)
	assert.NotNil(t, quizzes)
	assert.Len(t, quizzes, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}
