// Package fixtures seeds a development database with demo players and a
// spread of scores so the frontend leaderboard has something to show.
package fixtures

import (
	"fmt"
	"math/rand"
	"time"

	"classic-tetris-api/models"
	"classic-tetris-api/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Fixtures struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewFixtures(db *gorm.DB, logger *zap.SugaredLogger) *Fixtures {
	return &Fixtures{db: db, logger: logger}
}

// GenerateTestData creates 8 demo players and around 5 scores each, spread
// over the last 30 days.
func (f *Fixtures) GenerateTestData() error {
	f.logger.Info("starting fixtures generation")

	players, err := f.generatePlayers()
	if err != nil {
		return fmt.Errorf("failed to generate players: %w", err)
	}

	scoreCount, err := f.generateScores(players)
	if err != nil {
		return fmt.Errorf("failed to generate scores: %w", err)
	}

	f.logger.Infow("fixtures generated", "players", len(players), "scores", scoreCount)
	return nil
}

func (f *Fixtures) generatePlayers() ([]models.Player, error) {
	nicknames := []string{
		"ACE", "TETRA_KING", "Block Lord", "stacker99",
		"LINE-4", "no@pe!", "rotator", "MISDROP",
	}

	now := time.Now().UTC()
	players := make([]models.Player, 0, len(nicknames))

	for i, nickname := range nicknames {
		firstSeen := now.AddDate(0, 0, -rand.Intn(30)) // #nosec G404
		player := models.Player{
			ID:           uuid.NewString(),
			Nickname:     validation.SanitizeNickname(nickname),
			CreatedAt:    firstSeen,
			LastPlayedAt: firstSeen,
		}

		if err := f.db.Create(&player).Error; err != nil {
			return nil, err
		}

		players = append(players, player)
		f.logger.Infow("created player", "index", i, "player_id", player.ID, "nickname", player.Nickname)
	}

	return players, nil
}

func (f *Fixtures) generateScores(players []models.Player) (int, error) {
	now := time.Now().UTC()
	count := 0

	for _, player := range players {
		games := 3 + rand.Intn(5) // #nosec G404
		lastPlayed := player.CreatedAt

		for g := 0; g < games; g++ {
			playedAt := player.CreatedAt.Add(time.Duration(rand.Int63n(int64(now.Sub(player.CreatedAt)) + 1))) // #nosec G404

			level := 1 + rand.Intn(10)        // #nosec G404
			lines := level*10 + rand.Intn(40) // #nosec G404
			score := models.Score{
				ID:              uuid.NewString(),
				PlayerID:        player.ID,
				Score:           lines*40 + rand.Intn(5000)*level, // #nosec G404
				Level:           level,
				Lines:           lines,
				PlayTimeSeconds: 60 + rand.Intn(1800), // #nosec G404
				CreatedAt:       playedAt,
			}

			if err := f.db.Create(&score).Error; err != nil {
				return count, err
			}

			if playedAt.After(lastPlayed) {
				lastPlayed = playedAt
			}
			count++
		}

		if err := f.db.Model(&models.Player{}).Where("id = ?", player.ID).
			Update("last_played_at", lastPlayed).Error; err != nil {
			return count, err
		}
	}

	return count, nil
}

// ClearAllData removes everything the generator creates. Scores go first
// because of the foreign key.
func (f *Fixtures) ClearAllData() error {
	f.logger.Info("clearing fixture data")

	if err := f.db.Where("1 = 1").Delete(&models.Score{}).Error; err != nil {
		return fmt.Errorf("failed to clear scores: %w", err)
	}
	if err := f.db.Where("1 = 1").Delete(&models.Player{}).Error; err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}

	f.logger.Info("fixture data cleared")
	return nil
}
