package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"quizgem/config"
)

const maxGenerateAttempts = 5

// GeneratedQuestion is one validated multiple-choice question produced by the
// model.
type GeneratedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Options  []string `json:"options"`
}

type QuizGenerator interface {
	Generate(ctx context.Context, topic string, amount int) ([]GeneratedQuestion, error)
}

// contentGenerator is the single seam to the generative model, so the retry
// and validation logic can be exercised without a live client.
type contentGenerator interface {
	generateText(ctx context.Context, prompt string) (string, error)
}

type quizGenerator struct {
	gen     contentGenerator
	timeout time.Duration
}

func NewQuizGenerator(cfg *config.Config) (QuizGenerator, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &quizGenerator{
		gen:     &geminiContentGenerator{model: model},
		timeout: cfg.Gemini.GenerateTimeout,
	}, nil
}

func (s *quizGenerator) Generate(ctx context.Context, topic string, amount int) ([]GeneratedQuestion, error) {
	prompt := buildQuizPrompt(topic, amount)

	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		questions, err := s.attempt(ctx, prompt)
		if err == nil {
			return questions, nil
		}
		if errors.Is(err, ErrContentBlocked) {
			log.Warn().Str("topic", topic).Msg("Generate: prompt blocked by content safety, aborting")
			return nil, err
		}
		log.Warn().Err(err).Int("attempt", attempt).Str("topic", topic).Msg("Generate: invalid model output, retrying")
		lastErr = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrGenerationFailed, maxGenerateAttempts, lastErr)
}

func (s *quizGenerator) attempt(ctx context.Context, prompt string) ([]GeneratedQuestion, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.generateText(attemptCtx, prompt)
	if err != nil {
		return nil, err
	}
	return parseGeneratedQuestions(raw)
}

func buildQuizPrompt(topic string, amount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI that generates %d multiple-choice questions with their answers. ", amount)
	b.WriteString("Each answer must be at most 15 words long. Store every question, answer and option in a single JSON array.\n")
	fmt.Fprintf(&b, "Generate random, challenging multiple-choice questions about %s.\n", topic)
	b.WriteString("Respond strictly with JSON in the following shape:\n")
	b.WriteString(`[{"question":"the question","answer":"the answer, at most 15 words","options":["option 1","option 2","option 3","option 4"]}]`)
	b.WriteString("\nDo not add quotation marks or escape characters \\ inside the output fields.")
	b.WriteString("\nDo not wrap the output in markdown code fences.")
	return b.String()
}

var trailingComma = regexp.MustCompile(`,\s*]$`)

// parseGeneratedQuestions turns the model's raw text into validated questions.
// It strips markdown code fences and repairs a trailing comma before the
// closing bracket, both known failure modes of the model output.
func parseGeneratedQuestions(raw string) ([]GeneratedQuestion, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = trailingComma.ReplaceAllString(cleaned, "]")

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("model output is not a JSON array of questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned an empty question array")
	}

	for i, q := range questions {
		if q.Question == "" || q.Answer == "" {
			return nil, fmt.Errorf("question %d has an empty question or answer", i)
		}
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		for _, opt := range q.Options {
			if opt == "" {
				return nil, fmt.Errorf("question %d has an empty option", i)
			}
		}
	}
	return questions, nil
}

type geminiContentGenerator struct {
	model *genai.GenerativeModel
}

func (g *geminiContentGenerator) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("%w: %v", ErrContentBlocked, err)
		}
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("%w: prompt blocked (%v)", ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("gemini returned no content")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: candidate stopped for safety", ErrContentBlocked)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return b.String(), nil
}
