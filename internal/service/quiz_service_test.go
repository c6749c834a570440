package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizgem/internal/model"
	"quizgem/internal/repository"
)

type stubGenerator struct {
	questions []GeneratedQuestion
	err       error
}

func (s *stubGenerator) Generate(ctx context.Context, topic string, amount int) ([]GeneratedQuestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.questions, nil
}

func generatedSet(n int) []GeneratedQuestion {
	questions := make([]GeneratedQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, GeneratedQuestion{
			Question: "generated question",
			Answer:   "right",
			Options:  []string{"right", "a", "b", "c"},
		})
	}
	return questions
}

func newQuizService(db *gorm.DB, gen QuizGenerator) QuizService {
	return NewQuizService(gen, repository.NewQuizRepository(db), db)
}

func TestQuizService_CreateRoundTrip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newQuizService(db, &stubGenerator{questions: generatedSet(5)})

	created, err := svc.Create(context.Background(), "history", 5)
	require.NoError(t, err)
	assert.Equal(t, "History", created.Topic)
	assert.Equal(t, 5, created.Amount)
	assert.NotEmpty(t, created.QuizID)

	fetched, err := svc.Get(created.QuizID)
	require.NoError(t, err)
	assert.Equal(t, "History", fetched.Topic)
	assert.Equal(t, 5, fetched.Amount)

	// Options survive serialization and questions keep quiz order.
	quiz, err := repository.NewQuizRepository(db).FindByIDWithQuestions(created.QuizID)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 5)
	assert.Equal(t, "history", quiz.Topic)
	for i, q := range quiz.Questions {
		assert.Equal(t, i+1, q.PositionIn)
		assert.Equal(t, model.OptionList{"right", "a", "b", "c"}, q.Options)
	}
}

func TestQuizService_CreateGeneratorFailureIsNotPersisted(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newQuizService(db, &stubGenerator{err: ErrGenerationFailed})

	_, err := svc.Create(context.Background(), "history", 5)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	var count int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestQuizService_GetUnknown(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newQuizService(db, &stubGenerator{})

	_, err := svc.Get("b52cfa09-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuizService_GetAllAndTopics(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newQuizService(db, &stubGenerator{questions: generatedSet(2)})

	for _, topic := range []string{"history", "history", "space exploration"} {
		_, err := svc.Create(context.Background(), topic, 2)
		require.NoError(t, err)
	}

	all, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, q := range all {
		assert.Equal(t, 2, q.Amount)
	}

	topics, err := svc.Topics()
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "History", topics[0].Text)
	assert.Equal(t, 2, topics[0].Value)
	assert.Equal(t, "Space Exploration", topics[1].Text)
	assert.Equal(t, 1, topics[1].Value)
}
