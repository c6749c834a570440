package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizgem/internal/dto"
	"quizgem/internal/model"
	"quizgem/internal/repository"
)

// GameService is the state machine for a user's attempt at a quiz:
// NoActiveAttempt -> InProgress -> Finished.
type GameService interface {
	// StartOrContinue resumes the open game for a quiz+account, or starts a
	// new one. When the open game has no unanswered question left, a fresh
	// game is started instead of reusing the exhausted one.
	StartOrContinue(quizID, accountID string) (*dto.StartOrContinueResponse, error)
	Answer(gameID, quizID, questionID, answer, accountID string) (*dto.AnswerResponse, error)
	Finish(gameID, quizID, accountID string) (*dto.FinishResponse, error)
}

type gameService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	historyRepo  repository.HistoryRepository
	answerRepo   repository.AnswerRepository
}

func NewGameService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	historyRepo repository.HistoryRepository,
	answerRepo repository.AnswerRepository,
) GameService {
	return &gameService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		historyRepo:  historyRepo,
		answerRepo:   answerRepo,
	}
}

func (s *gameService) StartOrContinue(quizID, accountID string) (*dto.StartOrContinueResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
	} else if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("StartOrContinue: quiz lookup failed")
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions", quizID)
	}

	history, err := s.historyRepo.FindOpen(quizID, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		history, err = s.newGame(quizID, accountID)
	}
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("StartOrContinue: failed to load or create game")
		return nil, err
	}

	answered := make(map[string]bool, len(history.Answers))
	for _, a := range history.Answers {
		answered[a.QuestionID] = true
	}

	var next *model.Question
	for i := range quiz.Questions {
		if !answered[quiz.Questions[i].ID] {
			next = &quiz.Questions[i]
			break
		}
	}

	// Every question answered but never finished: start over with a new game.
	if next == nil {
		history, err = s.newGame(quizID, accountID)
		if err != nil {
			log.Error().Err(err).Str("quizID", quizID).Msg("StartOrContinue: failed to start fresh game")
			return nil, err
		}
		next = &quiz.Questions[0]
		answered = map[string]bool{}
	}

	var prompt dto.QuestionPrompt
	if err := copier.Copy(&prompt, next); err != nil {
		return nil, fmt.Errorf("failed to prepare question prompt: %w", err)
	}

	return &dto.StartOrContinueResponse{
		GameID:      history.ID,
		QuizID:      quiz.ID,
		Topic:       displayTopic(quiz.Topic),
		Number:      len(answered) + 1,
		Amount:      len(quiz.Questions),
		TimeStarted: history.TimeStarted,
		Question:    prompt,
	}, nil
}

func (s *gameService) newGame(quizID, accountID string) (*model.History, error) {
	history := &model.History{
		QuizID:      quizID,
		AccountID:   accountID,
		TimeStarted: time.Now(),
	}
	if err := s.historyRepo.Create(history); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return history, nil
}

func (s *gameService) Answer(gameID, quizID, questionID, answer, accountID string) (*dto.AnswerResponse, error) {
	history, err := s.historyRepo.FindOpenByID(gameID, quizID, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no open game %s", ErrNotFound, gameID)
	} else if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Answer: game lookup failed")
		return nil, err
	}

	question, err := s.questionRepo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && question.QuizID != quizID) {
		return nil, fmt.Errorf("%w: question %s", ErrNotFound, questionID)
	} else if err != nil {
		log.Error().Err(err).Str("questionID", questionID).Msg("Answer: question lookup failed")
		return nil, err
	}

	taken, err := s.answerRepo.ExistsForQuestion(history.ID, question.ID)
	if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Answer: duplicate check failed")
		return nil, err
	}
	if taken {
		return nil, ErrQuestionAnswered
	}

	// Exact string equality, case-sensitive, no trimming.
	record := model.Answer{
		HistoryID:  history.ID,
		QuestionID: question.ID,
		UserAnswer: answer,
		IsCorrect:  question.Answer == answer,
	}
	if err := s.answerRepo.Create(&record); err != nil {
		log.Error().Err(err).Str("gameID", gameID).Str("questionID", questionID).Msg("Answer: failed to persist answer")
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	return &dto.AnswerResponse{
		GameID:        history.ID,
		AnswerID:      record.ID,
		IsCorrect:     record.IsCorrect,
		CorrectAnswer: question.Answer,
		Answer:        record.UserAnswer,
	}, nil
}

func (s *gameService) Finish(gameID, quizID, accountID string) (*dto.FinishResponse, error) {
	history, err := s.historyRepo.FindOpenByID(gameID, quizID, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no open game %s", ErrNotFound, gameID)
	} else if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Finish: game lookup failed")
		return nil, err
	}

	total, err := s.questionRepo.CountByQuizID(quizID)
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("Finish: question count failed")
		return nil, err
	}
	if total == 0 {
		return nil, fmt.Errorf("quiz %s has no questions", quizID)
	}

	correct, err := s.answerRepo.CountCorrect(history.ID)
	if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Finish: correct-answer count failed")
		return nil, err
	}

	score := float64(correct) / float64(total) * 100
	now := time.Now()
	history.Score = &score
	history.TimeEnded = &now

	if err := s.historyRepo.Update(history); err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Finish: failed to persist finished game")
		return nil, fmt.Errorf("failed to finish game: %w", err)
	}

	return &dto.FinishResponse{
		GameID:      history.ID,
		QuizID:      history.QuizID,
		Topic:       displayTopic(history.Quiz.Topic),
		Score:       score,
		TimeStarted: history.TimeStarted,
		TimeEnded:   now,
	}, nil
}
