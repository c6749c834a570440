package dto

type CreateQuizRequest struct {
	Topic  string `json:"topic" binding:"required"`
	Amount int    `json:"amount" binding:"required,min=1,max=20"`
}

type AnswerQuizRequest struct {
	GameID     string `json:"gameId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

type FinishQuizRequest struct {
	GameID string `json:"gameId" binding:"required"`
}
