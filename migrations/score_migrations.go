package migrations

import "gorm.io/gorm"

// GetScoreMigrations returns the schema history for the score service. The
// SQL sticks to the dialect both supported engines (sqlite, postgres)
// accept.
func GetScoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_02_10_000000_create_score_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id VARCHAR(36) PRIMARY KEY,
						nickname VARCHAR(10) NOT NULL DEFAULT 'PLAYER',
						created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
						last_played_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
					);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS scores (
						id VARCHAR(36) PRIMARY KEY,
						player_id VARCHAR(36) NOT NULL,
						score INTEGER NOT NULL,
						level INTEGER NOT NULL,
						lines INTEGER NOT NULL,
						play_time_seconds INTEGER NOT NULL,
						created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
						FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE,
						CONSTRAINT check_score_range CHECK (score >= 0 AND score <= 9999999),
						CONSTRAINT check_level_range CHECK (level >= 1 AND level <= 10),
						CONSTRAINT check_lines_range CHECK (lines >= 0 AND lines <= 9999),
						CONSTRAINT check_time_range CHECK (play_time_seconds >= 0 AND play_time_seconds <= 86400)
					);
					CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
					CREATE INDEX IF NOT EXISTS idx_scores_player_created ON scores(player_id, created_at DESC);
				`).Error; err != nil {
					return err
				}

				return nil
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec(`DROP TABLE IF EXISTS scores;`).Error; err != nil {
					return err
				}
				return db.Exec(`DROP TABLE IF EXISTS players;`).Error
			},
		},
	}
}
