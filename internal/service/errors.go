package service

import "errors"

var (
	// ErrUnauthenticated covers missing, invalid or expired tokens, and tokens
	// whose account no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound covers absent quizzes, questions and open game sessions.
	ErrNotFound = errors.New("not found")

	// ErrQuestionAnswered is returned when a question already has an answer in
	// the current game.
	ErrQuestionAnswered = errors.New("question already answered in this game")

	// ErrGenerationFailed means the model never produced a valid quiz within
	// the retry bound.
	ErrGenerationFailed = errors.New("quiz generation failed")

	// ErrContentBlocked means the model refused the prompt on safety grounds.
	// Terminal: retrying the same prompt will not help.
	ErrContentBlocked = errors.New("quiz generation blocked by content safety")
)
