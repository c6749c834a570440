package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizgem/internal/dto"
	"quizgem/internal/model"
	"quizgem/internal/repository"
)

type QuizService interface {
	// Create generates questions for a topic and persists the quiz atomically.
	Create(ctx context.Context, topic string, amount int) (*dto.QuizSummary, error)
	Get(id string) (*dto.QuizSummary, error)
	GetAll() ([]dto.QuizSummary, error)
	Topics() ([]dto.TopicCount, error)
}

type quizService struct {
	generator QuizGenerator
	quizRepo  repository.QuizRepository
	db        *gorm.DB
}

func NewQuizService(generator QuizGenerator, quizRepo repository.QuizRepository, db *gorm.DB) QuizService {
	return &quizService{generator: generator, quizRepo: quizRepo, db: db}
}

func (s *quizService) Create(ctx context.Context, topic string, amount int) (*dto.QuizSummary, error) {
	generated, err := s.generator.Generate(ctx, topic, amount)
	if err != nil {
		return nil, err
	}

	quiz := model.Quiz{Topic: strings.ToLower(topic)}
	for i, q := range generated {
		quiz.Questions = append(quiz.Questions, model.Question{
			Question:   q.Question,
			Answer:     q.Answer,
			Options:    model.OptionList(q.Options),
			PositionIn: i + 1,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&quiz).Error
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Create: failed to persist quiz with questions")
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	return &dto.QuizSummary{
		QuizID: quiz.ID,
		Topic:  displayTopic(quiz.Topic),
		Amount: len(quiz.Questions),
	}, nil
}

func (s *quizService) Get(id string) (*dto.QuizSummary, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, id)
	} else if err != nil {
		log.Error().Err(err).Str("quizID", id).Msg("Get: quiz lookup failed")
		return nil, err
	}

	return &dto.QuizSummary{
		QuizID: quiz.ID,
		Topic:  displayTopic(quiz.Topic),
		Amount: len(quiz.Questions),
	}, nil
}

func (s *quizService) GetAll() ([]dto.QuizSummary, error) {
	quizzes, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("GetAll: failed to list quizzes")
		return nil, err
	}

	summaries := make([]dto.QuizSummary, 0, len(quizzes))
	for _, q := range quizzes {
		summaries = append(summaries, dto.QuizSummary{
			QuizID: q.ID,
			Topic:  displayTopic(q.Topic),
			Amount: q.QuestionCount,
		})
	}
	return summaries, nil
}

func (s *quizService) Topics() ([]dto.TopicCount, error) {
	quizzes, err := s.quizRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Topics: failed to list quizzes")
		return nil, err
	}

	seen := make(map[string]int)
	for _, q := range quizzes {
		seen[q.Topic]++
	}

	topics := make([]dto.TopicCount, 0, len(seen))
	for topic, count := range seen {
		topics = append(topics, dto.TopicCount{Text: displayTopic(topic), Value: count})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Text < topics[j].Text })
	return topics, nil
}
