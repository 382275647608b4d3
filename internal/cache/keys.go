package cache

import "fmt"

// QuizKey returns the cache key for a quiz entity.
func QuizKey(quizID string) string {
	return fmt.Sprintf("quiz:%s", quizID)
}
