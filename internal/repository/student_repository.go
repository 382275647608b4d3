package repository

import (
	"database/sql"
	"fmt"

	"mentorlab/internal/domain"
	"mentorlab/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// StudentDatabaseAdapter implements domain.StudentRepository using sqlx.DB.
// Account management lives outside this service; quiz flows only need the
// lookup.
type StudentDatabaseAdapter struct {
	db *sqlx.DB
}

// NewStudentDatabaseAdapter creates a new instance of StudentDatabaseAdapter
func NewStudentDatabaseAdapter(db *sqlx.DB) domain.StudentRepository {
	return &StudentDatabaseAdapter{db: db}
}

// GetStudentByID implements domain.StudentRepository
func (a *StudentDatabaseAdapter) GetStudentByID(id string) (*domain.Student, error) {
	var row models.Student
	query := `SELECT
		id "id",
		username "username",
		full_name "full_name"
	FROM students
	WHERE id = :1`

	err := a.db.Get(&row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by ID %s: %w", id, err)
	}

	return &domain.Student{
		ID:       row.ID,
		Username: row.Username,
		FullName: row.FullName.String,
	}, nil
}
