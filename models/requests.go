package models

// CreatePlayerRequest is the body of POST /api/v1/players. The nickname is
// optional; it is sanitized server-side, never rejected.
type CreatePlayerRequest struct {
	ID       string `json:"id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Nickname string `json:"nickname" example:"PLAYER1"`
}

// CreateScoreRequest is the body of POST /api/v1/scores. Numeric fields are
// pointers so that a missing field is distinguishable from a zero value.
type CreateScoreRequest struct {
	PlayerID        string `json:"player_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Score           *int   `json:"score" binding:"required" example:"12500"`
	Level           *int   `json:"level" binding:"required" example:"5"`
	Lines           *int   `json:"lines" binding:"required" example:"42"`
	PlayTimeSeconds *int   `json:"play_time_seconds" binding:"required" example:"300"`
}

// ErrorResponse mirrors the wire shape the game client expects for every
// non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Player not found"`
	Field  string `json:"field,omitempty" example:"level"`
}

type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"classic-tetris-api"`
}
