package repository

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStudentByID(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewStudentDatabaseAdapter(db)

	rows := sqlmock.NewRows([]string{"id", "username", "full_name"}).
		AddRow("S1", "jane", sql.NullString{String: "Jane Doe", Valid: true})

	mock.ExpectQuery(`(?s)SELECT.+FROM students.+WHERE id = :1`).
		WithArgs("S1").
		WillReturnRows(rows)

	student, err := repo.GetStudentByID("S1")

	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "jane", student.Username)
	assert.Equal(t, "Jane Doe", student.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStudentByIDNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewStudentDatabaseAdapter(db)

	mock.ExpectQuery(`(?s)SELECT.+FROM students.+WHERE id = :1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	student, err := repo.GetStudentByID("missing")

	assert.NoError(t, err)
	assert.Nil(t, student)
	assert.NoError(t, mock.ExpectationsWereMet())
}
