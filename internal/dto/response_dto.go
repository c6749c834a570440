package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// DataResponse is the envelope used by mutating quiz endpoints. AccessToken
// carries the token re-issued by the auth guard.
type DataResponse struct {
	Data        interface{} `json:"data"`
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token,omitempty"`
}

type RedirectResponse struct {
	RedirectURL string `json:"redirectUrl"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type QuizSummary struct {
	QuizID string `json:"quizId"`
	Topic  string `json:"topic"`
	Amount int    `json:"amount"`
}

type TopicCount struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// QuestionPrompt is a question as shown to a player; the correct answer is
// deliberately absent.
type QuestionPrompt struct {
	ID       string   `json:"questionId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type StartOrContinueResponse struct {
	GameID      string         `json:"gameId"`
	QuizID      string         `json:"quizId"`
	Topic       string         `json:"topic"`
	Number      int            `json:"number"`
	Amount      int            `json:"amount"`
	TimeStarted time.Time      `json:"timeStarted"`
	Question    QuestionPrompt `json:"question"`
}

type AnswerResponse struct {
	GameID        string `json:"gameId"`
	AnswerID      string `json:"answerId"`
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Answer        string `json:"answer"`
}

type FinishResponse struct {
	GameID      string    `json:"gameId"`
	QuizID      string    `json:"quizId"`
	Topic       string    `json:"topic"`
	Score       float64   `json:"score"`
	TimeStarted time.Time `json:"timeStarted"`
	TimeEnded   time.Time `json:"timeEnded"`
}

type SummaryEntry struct {
	GameID          string    `json:"gameId"`
	QuizID          string    `json:"quizId"`
	Score           float64   `json:"score"`
	DurationSeconds int64     `json:"durationSeconds"`
	Duration        string    `json:"duration"`
	TimeStarted     time.Time `json:"timeStarted"`
	TimeEnded       time.Time `json:"timeEnded"`
	Medal           int       `json:"medal"`
}

type SummaryResponse struct {
	Topic       string         `json:"topic"`
	TopScore    *SummaryEntry  `json:"topScore"`
	LatestScore *SummaryEntry  `json:"latestScore"`
	Summaries   []SummaryEntry `json:"summaries"`
}
