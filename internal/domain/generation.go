package domain

import (
	"context"
	"time"
)

// GenerationUsage reports the resource cost of a single LLM invocation so
// the caller can account for it in ai_usage_logs.
type GenerationUsage struct {
	Model          string
	InputTokens    int
	OutputTokens   int
	GenerationTime time.Duration
}

// ContentGenerationService produces draft activity content from a topic
// prompt. Drafts are not persisted by the generator; the caller validates
// and stores them.
type ContentGenerationService interface {
	// GenerateQuizDraft asks the LLM for numQuestions quiz questions about
	// topic and returns a QUIZ content envelope plus the usage incurred.
	// Usage is non-nil whenever the LLM was actually reached, even if the
	// response could not be parsed.
	GenerateQuizDraft(ctx context.Context, topic string, numQuestions int) (*ContentEnvelope, *GenerationUsage, error)
}
