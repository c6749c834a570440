package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizgem/internal/dto"
	"quizgem/internal/repository"
)

type SummaryService interface {
	// Summarize aggregates the finished games for a quiz+account into ranked
	// results. Read-only.
	Summarize(quizID, accountID string) (*dto.SummaryResponse, error)
}

type summaryService struct {
	quizRepo    repository.QuizRepository
	historyRepo repository.HistoryRepository
}

func NewSummaryService(quizRepo repository.QuizRepository, historyRepo repository.HistoryRepository) SummaryService {
	return &summaryService{quizRepo: quizRepo, historyRepo: historyRepo}
}

func (s *summaryService) Summarize(quizID, accountID string) (*dto.SummaryResponse, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: quiz %s", ErrNotFound, quizID)
	} else if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("Summarize: quiz lookup failed")
		return nil, err
	}

	histories, err := s.historyRepo.FindFinished(quizID, accountID)
	if err != nil {
		log.Error().Err(err).Str("quizID", quizID).Msg("Summarize: failed to load finished games")
		return nil, err
	}

	entries := make([]dto.SummaryEntry, 0, len(histories))
	for _, h := range histories {
		seconds := int64(h.TimeEnded.Sub(h.TimeStarted).Seconds())
		score := 0.0
		if h.Score != nil {
			score = *h.Score
		}
		entries = append(entries, dto.SummaryEntry{
			GameID:          h.ID,
			QuizID:          h.QuizID,
			Score:           score,
			DurationSeconds: seconds,
			Duration:        formatTimeDelta(seconds),
			TimeStarted:     h.TimeStarted,
			TimeEnded:       *h.TimeEnded,
		})
	}

	// Ranking key: durationSeconds - score, ascending. Higher score and
	// shorter duration both improve rank.
	sort.SliceStable(entries, func(i, j int) bool {
		return rankKey(entries[i]) < rankKey(entries[j])
	})
	for i := range entries {
		entries[i].Medal = i + 1
	}

	resp := &dto.SummaryResponse{
		Topic:     displayTopic(quiz.Topic),
		Summaries: entries,
	}
	if len(entries) > 0 {
		top := entries[0]
		resp.TopScore = &top

		latest := entries[0]
		for _, e := range entries[1:] {
			if e.TimeStarted.After(latest.TimeStarted) {
				latest = e
			}
		}
		resp.LatestScore = &latest
	}
	return resp, nil
}

func rankKey(e dto.SummaryEntry) float64 {
	return float64(e.DurationSeconds) - e.Score
}
