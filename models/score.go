package models

import (
	"time"
)

// Score is a single completed-game result owned by exactly one player.
type Score struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	PlayerID        string    `gorm:"size:36;not null;index:idx_scores_player_created,priority:1" json:"player_id"`
	Score           int       `gorm:"not null;check:score >= 0;index:idx_scores_score" json:"score"`
	Level           int       `gorm:"not null;check:level >= 1 AND level <= 10" json:"level"`
	Lines           int       `gorm:"not null;check:lines >= 0" json:"lines"`
	PlayTimeSeconds int       `gorm:"not null;check:play_time_seconds >= 0" json:"play_time_seconds"`
	CreatedAt       time.Time `gorm:"not null;index:idx_scores_player_created,priority:2" json:"created_at"`

	// Relationships
	Player *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`
}

func (Score) TableName() string {
	return "scores"
}

// RankingEntry is one row of the global leaderboard. Rank is the 1-based
// position within the returned page; tied scores get consecutive ranks.
type RankingEntry struct {
	Rank           int       `json:"rank"`
	PlayerNickname string    `json:"player_nickname"`
	Score          int       `json:"score"`
	Level          int       `json:"level"`
	Lines          int       `json:"lines"`
	CreatedAt      time.Time `json:"created_at"`
}

type RankingResponse struct {
	Data  []RankingEntry `json:"data"`
	Total int64          `json:"total"`
}
