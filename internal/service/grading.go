package service

import (
	"context"
	"encoding/json"
	"fmt"

	"mentorlab/internal/domain"
	"mentorlab/internal/genai"
	"mentorlab/internal/logger"

	"go.uber.org/zap"
)

// placeholderAnalysis is stored when the feedback step degrades; the numeric
// score is persisted regardless.
const placeholderAnalysis = "Detailed feedback is temporarily unavailable. Please check back later."

// analysisParams are the decoding parameters for the feedback call.
var analysisParams = domain.GenerationParams{
	Temperature:     0.5,
	MaxOutputTokens: 1500,
}

// Grade scores an answer set against quiz content. Questions are iterated in
// order; the answer for question i is looked up under key "q{i}". A missing
// key or a mismatched index counts as incorrect, and keys beyond the question
// range are ignored. Grading never calls the generative API.
func Grade(content *domain.QuizContent, answers domain.AnswerSet) (score, total int) {
	for i, q := range content.Questions {
		total++
		if selected, ok := answers[domain.AnswerKey(i)]; ok && selected == q.CorrectAnswer {
			score++
		}
	}
	return score, total
}

// analysisPayload is the JSON shape the feedback prompt asks the model for.
type analysisPayload struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Analysis   string   `json:"analysis"`
}

func buildAnalysisPrompt(questionsJSON, answersJSON string) string {
	return fmt.Sprintf(
		"Analyze the following quiz results. "+
			"Questions and correct answers: %s\n"+
			"Student's answers: %s\n\n"+
			"Provide a detailed analysis. "+
			"Return ONLY valid JSON in this exact format (no markdown, no extra text): "+
			`{"strengths": ["strength1", "strength2"], "weaknesses": ["weakness1", "weakness2"], "analysis": "detailed analysis text"} `+
			"In strengths, list topics/concepts the student answered correctly. "+
			"In weaknesses, list topics/concepts the student answered incorrectly. "+
			"In analysis, provide constructive feedback and study recommendations.",
		questionsJSON, answersJSON,
	)
}

// analyzeResults asks the model for qualitative feedback on a graded
// submission. Any failure degrades to empty strengths/weaknesses and a
// placeholder analysis rather than failing the submission; a quota signal is
// additionally reported so the caller can surface a retry hint.
func (s *quizService) analyzeResults(ctx context.Context, questionsJSON, answersJSON string) (payload analysisPayload, degraded, rateLimited bool) {
	l := logger.Get()

	degradedPayload := analysisPayload{
		Strengths:  []string{},
		Weaknesses: []string{},
		Analysis:   placeholderAnalysis,
	}

	raw, err := s.generator.Generate(ctx, buildAnalysisPrompt(questionsJSON, answersJSON), analysisParams)
	if err != nil {
		if genai.IsRateLimited(err) {
			l.Warn("Feedback generation rate limited, storing placeholder")
			return degradedPayload, true, true
		}
		l.Warn("Feedback generation failed, storing placeholder", zap.Error(err))
		return degradedPayload, true, false
	}

	cleaned := genai.Sanitize(raw)
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		l.Warn("Feedback response is not valid JSON, storing placeholder",
			zap.Error(err),
			zap.String("response", truncate(cleaned, 200)))
		return degradedPayload, true, false
	}

	if payload.Strengths == nil {
		payload.Strengths = []string{}
	}
	if payload.Weaknesses == nil {
		payload.Weaknesses = []string{}
	}
	return payload, false, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
