package models

import (
	"time"
)

// Player is an anonymous participant identified by a client-generated UUID.
// The ID arrives from the client and is stored in canonical lowercase form.
type Player struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Nickname     string    `gorm:"size:10;not null;default:PLAYER" json:"nickname"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	LastPlayedAt time.Time `gorm:"not null" json:"last_played_at"`

	// Relationships
	Scores []Score `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"scores,omitempty"`
}

func (Player) TableName() string {
	return "players"
}
