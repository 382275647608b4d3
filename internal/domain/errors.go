package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Quiz specific errors
	CodeQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	CodeStudentNotFound ErrorCode = "STUDENT_NOT_FOUND"
	CodeMalformedQuiz   ErrorCode = "MALFORMED_QUIZ"
	CodeRateLimited     ErrorCode = "RATE_LIMITED"
	CodeLLMService      ErrorCode = "LLM_SERVICE_ERROR"
	CodeStorage         ErrorCode = "STORAGE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewStudentNotFoundError(studentID string) *DomainError {
	return NewError(CodeStudentNotFound, fmt.Sprintf("Student not found with ID: %s", studentID), nil)
}

// NewMalformedQuizError indicates the persisted question payload of a quiz
// cannot be parsed. The quiz itself is corrupt; this is not recoverable.
func NewMalformedQuizError(quizID string, err error) *DomainError {
	return NewError(CodeMalformedQuiz, fmt.Sprintf("Stored questions for quiz %s are not valid JSON", quizID), err)
}

func NewRateLimitedError(err error) *DomainError {
	return NewError(CodeRateLimited, "Generative API quota exceeded, please retry shortly", err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMService, "Failed to process with generative service", err)
}

func NewStorageError(message string, err error) *DomainError {
	return NewError(CodeStorage, message, err)
}
