package contentgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"lxp-core/internal/domain"
	"lxp-core/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const draftPromptTemplate = `You are an expert learning content author. Create %d unique quiz questions about: "%s".

For each question, provide the following information in JSON format:
1.  "text": The question text.
2.  "options": An array of exactly 4 answer options.
3.  "correct_option": The zero-based index of the correct option.
4.  "points": An integer point value between 1 and 5.

Respond with ONLY a single JSON array containing %d JSON objects.
Example for one question object:
{
  "text": "What is the capital of France?",
  "options": ["Berlin", "Paris", "Madrid", "Rome"],
  "correct_option": 1,
  "points": 1
}`

// OllamaContentGenerator implements domain.ContentGenerationService against
// an Ollama server via langchaingo.
type OllamaContentGenerator struct {
	llm       llms.Model
	modelName string
}

// NewOllamaContentGenerator creates a generator talking to serverURL with
// the given model.
func NewOllamaContentGenerator(serverURL, modelName string) (*OllamaContentGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaContentGenerator{llm: llm, modelName: modelName}, nil
}

// NewOllamaContentGeneratorWithModel wires an already-constructed model,
// used by tests to inject a fake.
func NewOllamaContentGeneratorWithModel(llm llms.Model, modelName string) *OllamaContentGenerator {
	return &OllamaContentGenerator{llm: llm, modelName: modelName}
}

// GenerateQuizDraft implements domain.ContentGenerationService.
func (g *OllamaContentGenerator) GenerateQuizDraft(ctx context.Context, topic string, numQuestions int) (*domain.ContentEnvelope, *domain.GenerationUsage, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(draftPromptTemplate, numQuestions, topic, numQuestions)

	start := time.Now()
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
	elapsed := time.Since(start)

	if err != nil {
		l.Error("LLM call failed during quiz draft generation", zap.Error(err), zap.String("topic", topic))
		return nil, nil, domain.NewLLMServiceError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, nil, domain.NewLLMServiceError(fmt.Errorf("LLM returned no choices"))
	}

	rawResponse := resp.Choices[0].Content
	usage := g.usageFromResponse(prompt, rawResponse, resp.Choices[0].GenerationInfo, elapsed)

	l.Debug("Raw LLM response received", zap.String("raw_response", rawResponse))

	questions, err := parseQuizQuestions(rawResponse)
	if err != nil {
		l.Error("Failed to parse LLM quiz draft response", zap.Error(err), zap.String("topic", topic))
		// The call was made and billed; hand usage back for accounting.
		return nil, usage, domain.NewLLMServiceError(err)
	}
	if len(questions) == 0 {
		return nil, usage, domain.NewLLMServiceError(fmt.Errorf("LLM returned no usable questions for topic %q", topic))
	}

	envelope := &domain.ContentEnvelope{
		SchemaVersion: domain.CurrentSchemaVersion,
		ActivityType:  domain.ActivityQuiz,
		Title:         topic,
		Quiz: &domain.QuizContent{
			Questions:    questions,
			PassingScore: defaultPassingScore(questions),
		},
	}

	l.Info("Generated quiz draft",
		zap.String("topic", topic),
		zap.Int("questions", len(questions)),
		zap.Int("output_tokens", usage.OutputTokens),
		zap.Duration("generation_time", elapsed),
	)
	return envelope, usage, nil
}

// usageFromResponse extracts token counts from the provider's generation
// info, estimating from text length when the provider reports none.
func (g *OllamaContentGenerator) usageFromResponse(prompt, response string, info map[string]any, elapsed time.Duration) *domain.GenerationUsage {
	usage := &domain.GenerationUsage{
		Model:          g.modelName,
		InputTokens:    intFromGenerationInfo(info, "PromptTokens"),
		OutputTokens:   intFromGenerationInfo(info, "CompletionTokens"),
		GenerationTime: elapsed,
	}
	if usage.InputTokens == 0 {
		usage.InputTokens = estimateTokens(prompt)
	}
	if usage.OutputTokens == 0 {
		usage.OutputTokens = estimateTokens(response)
	}
	return usage
}

func intFromGenerationInfo(info map[string]any, key string) int {
	if info == nil {
		return 0
	}
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// estimateTokens approximates token count when the provider does not report
// one. Four characters per token is the usual rule of thumb for English.
func estimateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		n = 1
	}
	return n
}

// parseQuizQuestions extracts the JSON array from a raw LLM response,
// tolerating reasoning preambles and <think> blocks around it.
func parseQuizQuestions(raw string) ([]domain.QuizQuestion, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	jsonStart := strings.Index(cleaned, "[")
	jsonEnd := strings.LastIndex(cleaned, "]")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("no JSON array found in LLM response")
	}
	extracted := cleaned[jsonStart : jsonEnd+1]

	var parsed []domain.QuizQuestion
	if err := json.Unmarshal([]byte(extracted), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	questions := make([]domain.QuizQuestion, 0, len(parsed))
	for i, q := range parsed {
		if q.Text == "" {
			continue
		}
		if len(q.Options) > 0 && (q.CorrectOption < 0 || q.CorrectOption >= len(q.Options)) {
			continue
		}
		if q.Points <= 0 {
			q.Points = 1
		}
		q.ID = fmt.Sprintf("q%d", i+1)
		questions = append(questions, q)
	}
	return questions, nil
}

// defaultPassingScore is 70% of the total points, rounded down.
func defaultPassingScore(questions []domain.QuizQuestion) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total * 70 / 100
}

// Static assertion to ensure OllamaContentGenerator implements ContentGenerationService
var _ domain.ContentGenerationService = (*OllamaContentGenerator)(nil)
