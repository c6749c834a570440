package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedContent replays canned model outputs, one per call.
type scriptedContent struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedContent) generateText(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", fmt.Errorf("unexpected call %d", i)
}

const validQuizJSON = `[
	{"question":"Capital of France?","answer":"Paris","options":["Paris","London","Berlin","Madrid"]},
	{"question":"2+2?","answer":"4","options":["3","4","5","6"]}
]`

func TestParseGeneratedQuestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "plain json array",
			raw:  validQuizJSON,
			want: 2,
		},
		{
			name: "markdown fenced",
			raw:  "```json\n" + validQuizJSON + "\n```",
			want: 2,
		},
		{
			name: "trailing comma before closing bracket",
			raw:  `[{"question":"q","answer":"a","options":["1","2","3","4"]}, ]`,
			want: 1,
		},
		{
			name:    "not an array",
			raw:     `{"question":"q","answer":"a","options":["1","2","3","4"]}`,
			wantErr: true,
		},
		{
			name:    "empty array",
			raw:     `[]`,
			wantErr: true,
		},
		{
			name:    "three options",
			raw:     `[{"question":"q","answer":"a","options":["1","2","3"]}]`,
			wantErr: true,
		},
		{
			name:    "five options",
			raw:     `[{"question":"q","answer":"a","options":["1","2","3","4","5"]}]`,
			wantErr: true,
		},
		{
			name:    "empty answer",
			raw:     `[{"question":"q","answer":"","options":["1","2","3","4"]}]`,
			wantErr: true,
		},
		{
			name:    "empty option",
			raw:     `[{"question":"q","answer":"a","options":["1","","3","4"]}]`,
			wantErr: true,
		},
		{
			name:    "non-string option",
			raw:     `[{"question":"q","answer":"a","options":["1",2,"3","4"]}]`,
			wantErr: true,
		},
		{
			name:    "plain prose",
			raw:     "Sure! Here are your questions:",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseGeneratedQuestions(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
			for _, q := range got {
				assert.NotEmpty(t, q.Question)
				assert.NotEmpty(t, q.Answer)
				assert.Len(t, q.Options, 4)
			}
		})
	}
}

func TestQuizGenerator_RetriesUntilValid(t *testing.T) {
	t.Parallel()

	gen := &scriptedContent{responses: []string{"not json", `[]`, validQuizJSON}}
	svc := &quizGenerator{gen: gen, timeout: time.Second}

	questions, err := svc.Generate(context.Background(), "geography", 2)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, 3, gen.calls)
}

func TestQuizGenerator_ExhaustsAttempts(t *testing.T) {
	t.Parallel()

	gen := &scriptedContent{responses: []string{"bad", "bad", "bad", "bad", "bad"}}
	svc := &quizGenerator{gen: gen, timeout: time.Second}

	_, err := svc.Generate(context.Background(), "geography", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, maxGenerateAttempts, gen.calls)
}

func TestQuizGenerator_SafetyBlockIsTerminal(t *testing.T) {
	t.Parallel()

	gen := &scriptedContent{errs: []error{fmt.Errorf("%w: prompt blocked", ErrContentBlocked)}}
	svc := &quizGenerator{gen: gen, timeout: time.Second}

	_, err := svc.Generate(context.Background(), "geography", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentBlocked)
	assert.NotErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, gen.calls)
}

func TestBuildQuizPrompt(t *testing.T) {
	t.Parallel()

	prompt := buildQuizPrompt("world war history", 5)
	assert.Contains(t, prompt, "5 multiple-choice questions")
	assert.Contains(t, prompt, "world war history")
	assert.Contains(t, prompt, `"options"`)
}
