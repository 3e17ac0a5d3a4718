package services

import (
	"errors"
	"time"

	"classic-tetris-api/models"
	"classic-tetris-api/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrPlayerNotFound is returned when a score references a player id that was
// never registered. It maps to a 404 at the HTTP boundary.
var ErrPlayerNotFound = errors.New("player not found")

const (
	// DefaultLimit is applied when the caller omits the limit parameter or
	// sends something unusable.
	DefaultLimit = 10

	// MaxLimit caps page sizes. The original service had no upper bound,
	// which left an open resource-exhaustion vector; requests asking for
	// more are clamped rather than rejected.
	MaxLimit = 100
)

// ScoreService is the only component that reads or writes persisted state.
type ScoreService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewScoreService(db *gorm.DB, logger *zap.SugaredLogger) *ScoreService {
	return &ScoreService{
		db:     db,
		logger: logger,
	}
}

// UpsertPlayer registers a player on first call and only refreshes
// last_played_at on repeat calls. The stored nickname is never rewritten
// after creation, even when a repeat call carries a different one.
func (s *ScoreService) UpsertPlayer(id string, nickname string) (*models.Player, error) {
	playerID, err := validation.NormalizePlayerID(id)
	if err != nil {
		return nil, err
	}

	var player models.Player
	result := s.db.First(&player, "id = ?", playerID)
	if result.Error == nil {
		player.LastPlayedAt = time.Now().UTC()
		if err := s.db.Model(&player).Update("last_played_at", player.LastPlayedAt).Error; err != nil {
			return nil, err
		}
		return &player, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	now := time.Now().UTC()
	player = models.Player{
		ID:           playerID,
		Nickname:     validation.SanitizeNickname(nickname),
		CreatedAt:    now,
		LastPlayedAt: now,
	}
	if err := s.db.Create(&player).Error; err != nil {
		return nil, err
	}

	s.logger.Infow("player registered", "player_id", player.ID, "nickname", player.Nickname)
	return &player, nil
}

// SubmitScore validates the submission, then inserts the score and touches
// the owning player's last_played_at in a single transaction. On any failure
// nothing is persisted.
func (s *ScoreService) SubmitScore(playerID string, score, level, lines, playTimeSeconds int) (*models.Score, error) {
	if err := validation.ValidateScoreFields(score, level, lines, playTimeSeconds); err != nil {
		return nil, err
	}

	// Players are stored under the lowercase canonical id, so the lookup has
	// to normalize the same way registration did. An id that is not a UUID
	// at all cannot reference any player.
	playerID, err := validation.NormalizePlayerID(playerID)
	if err != nil {
		return nil, ErrPlayerNotFound
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var player models.Player
	if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	record := models.Score{
		ID:              uuid.NewString(),
		PlayerID:        player.ID,
		Score:           score,
		Level:           level,
		Lines:           lines,
		PlayTimeSeconds: playTimeSeconds,
		CreatedAt:       now,
	}

	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(&player).Update("last_played_at", now).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.logger.Infow("score recorded",
		"score_id", record.ID,
		"player_id", record.PlayerID,
		"score", record.Score,
		"level", record.Level,
	)
	return &record, nil
}

// GetRankings returns the global top scores ordered by score descending.
// Ties break on created_at ascending, so the earlier of two equal scores
// ranks higher. Rank is the 1-based position within the returned page, and
// Total is the full score count regardless of limit.
func (s *ScoreService) GetRankings(limit int) (*models.RankingResponse, error) {
	limit = normalizeLimit(limit)

	type rankedRow struct {
		Nickname       string
		Score          int
		Level          int
		Lines          int
		ScoreCreatedAt time.Time
	}

	var rows []rankedRow
	err := s.db.Model(&models.Score{}).
		Select("players.nickname AS nickname, scores.score AS score, scores.level AS level, scores.lines AS lines, scores.created_at AS score_created_at").
		Joins("JOIN players ON players.id = scores.player_id").
		Order("scores.score DESC").
		Order("scores.created_at ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.Score{}).Count(&total).Error; err != nil {
		return nil, err
	}

	entries := make([]models.RankingEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.RankingEntry{
			Rank:           i + 1,
			PlayerNickname: row.Nickname,
			Score:          row.Score,
			Level:          row.Level,
			Lines:          row.Lines,
			CreatedAt:      row.ScoreCreatedAt,
		})
	}

	return &models.RankingResponse{Data: entries, Total: total}, nil
}

// GetPlayerScores returns a player's own scores, newest first. An unknown
// player id yields an empty list, never an error.
func (s *ScoreService) GetPlayerScores(playerID string, limit int) ([]models.Score, error) {
	limit = normalizeLimit(limit)

	scores := make([]models.Score, 0, limit)

	// Lowercase valid UUIDs so history lookups match registration case;
	// anything else cannot match a stored id and yields the empty list.
	playerID, err := validation.NormalizePlayerID(playerID)
	if err != nil {
		return scores, nil
	}
	err = s.db.Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&scores).Error
	if err != nil {
		return nil, err
	}

	return scores, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
