package contentgen

import (
	"context"
	"errors"
	"testing"

	"lxp-core/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns a canned response without talking to a server.
type fakeModel struct {
	response       string
	generationInfo map[string]any
	err            error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{
			{Content: f.response, GenerationInfo: f.generationInfo},
		},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const validDraftJSON = `[
  {"text": "What starts a goroutine?", "options": ["go", "run", "spawn", "fork"], "correct_option": 0, "points": 2},
  {"text": "Which primitive synchronizes goroutines?", "options": ["channel", "thread", "lock file", "pipe"], "correct_option": 0, "points": 2}
]`

func TestNewOllamaContentGenerator_Validation(t *testing.T) {
	_, err := NewOllamaContentGenerator("", "qwen3:0.6b")
	assert.Error(t, err)

	_, err = NewOllamaContentGenerator("http://localhost:11434", "")
	assert.Error(t, err)
}

func TestGenerateQuizDraft(t *testing.T) {
	ctx := context.Background()

	t.Run("success with reported token counts", func(t *testing.T) {
		gen := NewOllamaContentGeneratorWithModel(&fakeModel{
			response:       validDraftJSON,
			generationInfo: map[string]any{"PromptTokens": 120, "CompletionTokens": int64(450)},
		}, "qwen3:0.6b")

		envelope, usage, err := gen.GenerateQuizDraft(ctx, "goroutines", 2)
		require.NoError(t, err)
		require.NotNil(t, envelope)
		assert.Equal(t, domain.ActivityQuiz, envelope.ActivityType)
		assert.Equal(t, "goroutines", envelope.Title)
		require.NotNil(t, envelope.Quiz)
		require.Len(t, envelope.Quiz.Questions, 2)
		assert.Equal(t, "q1", envelope.Quiz.Questions[0].ID)
		// 70% of 4 points, rounded down.
		assert.Equal(t, 2, envelope.Quiz.PassingScore)
		assert.NoError(t, envelope.Validate())

		require.NotNil(t, usage)
		assert.Equal(t, "qwen3:0.6b", usage.Model)
		assert.Equal(t, 120, usage.InputTokens)
		assert.Equal(t, 450, usage.OutputTokens)
	})

	t.Run("token counts estimated when provider reports none", func(t *testing.T) {
		gen := NewOllamaContentGeneratorWithModel(&fakeModel{response: validDraftJSON}, "qwen3:0.6b")

		_, usage, err := gen.GenerateQuizDraft(ctx, "goroutines", 2)
		require.NoError(t, err)
		require.NotNil(t, usage)
		assert.Greater(t, usage.InputTokens, 0)
		assert.Greater(t, usage.OutputTokens, 0)
	})

	t.Run("call failure returns no usage", func(t *testing.T) {
		gen := NewOllamaContentGeneratorWithModel(&fakeModel{err: errors.New("connection refused")}, "qwen3:0.6b")

		envelope, usage, err := gen.GenerateQuizDraft(ctx, "goroutines", 2)
		require.Error(t, err)
		assert.Nil(t, envelope)
		assert.Nil(t, usage)

		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	})

	t.Run("unparseable response still returns usage", func(t *testing.T) {
		gen := NewOllamaContentGeneratorWithModel(&fakeModel{response: "I am unable to answer that."}, "qwen3:0.6b")

		envelope, usage, err := gen.GenerateQuizDraft(ctx, "goroutines", 2)
		require.Error(t, err)
		assert.Nil(t, envelope)
		// The call was made; accounting still happens upstream.
		require.NotNil(t, usage)
		assert.Greater(t, usage.OutputTokens, 0)
	})

	t.Run("reasoning preamble around the array", func(t *testing.T) {
		gen := NewOllamaContentGeneratorWithModel(&fakeModel{
			response: "<think>Let me come up with questions.</think>\nHere you go:\n" + validDraftJSON,
		}, "qwen3:0.6b")

		envelope, _, err := gen.GenerateQuizDraft(ctx, "goroutines", 2)
		require.NoError(t, err)
		assert.Len(t, envelope.Quiz.Questions, 2)
	})
}

func TestParseQuizQuestions(t *testing.T) {
	t.Run("filters malformed entries", func(t *testing.T) {
		raw := `[
		  {"text": "", "options": ["a", "b"], "correct_option": 0},
		  {"text": "Index out of range", "options": ["a", "b"], "correct_option": 5},
		  {"text": "Good question", "options": ["a", "b", "c", "d"], "correct_option": 1}
		]`
		questions, err := parseQuizQuestions(raw)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "Good question", questions[0].Text)
		// Missing points defaults to 1.
		assert.Equal(t, 1, questions[0].Points)
	})

	t.Run("open-ended question without options survives", func(t *testing.T) {
		raw := `[{"text": "Explain select.", "points": 3}]`
		questions, err := parseQuizQuestions(raw)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, 3, questions[0].Points)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := parseQuizQuestions(`{"text": "not an array"}`)
		assert.Error(t, err)
	})

	t.Run("invalid JSON inside array markers", func(t *testing.T) {
		_, err := parseQuizQuestions(`[{"text": broken]`)
		assert.Error(t, err)
	})
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("ab"))
	assert.Equal(t, 25, estimateTokens(string(make([]byte, 100))))
}
