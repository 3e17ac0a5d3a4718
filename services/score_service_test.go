package services

import (
	"fmt"
	"testing"
	"time"

	"classic-tetris-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService opens a fresh in-memory database per test. The named DSN
// keeps every pooled connection on the same memory store.
func newTestService(t *testing.T) *ScoreService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Player{}, &models.Score{}))

	return NewScoreService(db, zap.NewNop().Sugar())
}

func mustCreatePlayer(t *testing.T, s *ScoreService, nickname string) *models.Player {
	t.Helper()
	player, err := s.UpsertPlayer(uuid.NewString(), nickname)
	require.NoError(t, err)
	return player
}

func TestUpsertPlayerCreates(t *testing.T) {
	s := newTestService(t)

	id := "550E8400-E29B-41D4-A716-446655440000"
	player, err := s.UpsertPlayer(id, "toolongname!")
	require.NoError(t, err)

	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", player.ID, "id should be stored lowercase")
	assert.Equal(t, "TOOLONGNAM", player.Nickname)
	assert.False(t, player.CreatedAt.IsZero())
	assert.Equal(t, player.CreatedAt, player.LastPlayedAt)
}

func TestUpsertPlayerRejectsBadID(t *testing.T) {
	s := newTestService(t)

	for _, id := range []string{"", "not-a-uuid", "550e8400e29b41d4a716446655440000", "{550e8400-e29b-41d4-a716-446655440000}"} {
		_, err := s.UpsertPlayer(id, "TEST")
		assert.Error(t, err, "id %q should be rejected", id)
	}
}

func TestUpsertPlayerRepeatCallKeepsNickname(t *testing.T) {
	s := newTestService(t)

	id := uuid.NewString()
	first, err := s.UpsertPlayer(id, "FIRST")
	require.NoError(t, err)

	second, err := s.UpsertPlayer(id, "SECOND")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "FIRST", second.Nickname, "repeat upsert must not rewrite the nickname")
	assert.WithinDuration(t, first.CreatedAt, second.CreatedAt, time.Second)
	assert.False(t, second.LastPlayedAt.Before(first.LastPlayedAt))
}

func TestSubmitScore(t *testing.T) {
	s := newTestService(t)
	player := mustCreatePlayer(t, s, "ACE")

	before := player.LastPlayedAt
	time.Sleep(10 * time.Millisecond)

	score, err := s.SubmitScore(player.ID, 12500, 5, 42, 300)
	require.NoError(t, err)

	assert.NotEmpty(t, score.ID)
	assert.Equal(t, player.ID, score.PlayerID)
	assert.Equal(t, 12500, score.Score)
	assert.Equal(t, 5, score.Level)
	assert.Equal(t, 42, score.Lines)
	assert.Equal(t, 300, score.PlayTimeSeconds)

	var stored models.Player
	require.NoError(t, s.db.First(&stored, "id = ?", player.ID).Error)
	assert.True(t, stored.LastPlayedAt.After(before), "submission must touch last_played_at")
}

func TestSubmitScoreUppercaseIDMatchesStoredPlayer(t *testing.T) {
	s := newTestService(t)

	upper := "550E8400-E29B-41D4-A716-446655440000"
	_, err := s.UpsertPlayer(upper, "ACE")
	require.NoError(t, err)

	// the id is case-insensitive on input everywhere, not just at registration
	score, err := s.SubmitScore(upper, 1000, 1, 4, 30)
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", score.PlayerID)
}

func TestSubmitScoreUnknownPlayerLeavesStoreUnchanged(t *testing.T) {
	s := newTestService(t)
	mustCreatePlayer(t, s, "ACE")

	_, err := s.SubmitScore(uuid.NewString(), 1000, 1, 0, 10)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = s.SubmitScore("not-a-uuid", 1000, 1, 0, 10)
	assert.ErrorIs(t, err, ErrPlayerNotFound, "a malformed id can reference no player")

	var count int64
	require.NoError(t, s.db.Model(&models.Score{}).Count(&count).Error)
	assert.Zero(t, count, "failed submission must persist nothing")
}

func TestSubmitScoreFieldValidation(t *testing.T) {
	s := newTestService(t)
	player := mustCreatePlayer(t, s, "ACE")

	cases := []struct {
		name                       string
		score, level, lines, ptime int
	}{
		{"negative score", -1, 1, 0, 10},
		{"score too big", 10_000_000, 1, 0, 10},
		{"level zero", 100, 0, 0, 10},
		{"level too big", 100, 11, 0, 10},
		{"negative lines", 100, 1, -1, 10},
		{"lines too big", 100, 1, 10_000, 10},
		{"negative play time", 100, 1, 0, -1},
		{"play time over a day", 100, 1, 0, 86_401},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SubmitScore(player.ID, tc.score, tc.level, tc.lines, tc.ptime)
			assert.Error(t, err)
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&models.Score{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetRankings(t *testing.T) {
	s := newTestService(t)

	for _, points := range []int{5000, 3000, 1000} {
		player := mustCreatePlayer(t, s, fmt.Sprintf("P%d", points))
		_, err := s.SubmitScore(player.ID, points, 3, 20, 120)
		require.NoError(t, err)
	}

	rankings, err := s.GetRankings(2)
	require.NoError(t, err)

	require.Len(t, rankings.Data, 2)
	assert.Equal(t, int64(3), rankings.Total, "total must count every score regardless of limit")
	assert.Equal(t, 1, rankings.Data[0].Rank)
	assert.Equal(t, 5000, rankings.Data[0].Score)
	assert.Equal(t, 2, rankings.Data[1].Rank)
	assert.Equal(t, 3000, rankings.Data[1].Score)
}

func TestGetRankingsOrderAndRanks(t *testing.T) {
	s := newTestService(t)
	player := mustCreatePlayer(t, s, "ACE")

	for _, points := range []int{700, 100, 900, 400, 900} {
		_, err := s.SubmitScore(player.ID, points, 1, 4, 30)
		require.NoError(t, err)
	}

	rankings, err := s.GetRankings(10)
	require.NoError(t, err)
	require.Len(t, rankings.Data, 5)

	for i, entry := range rankings.Data {
		assert.Equal(t, i+1, entry.Rank)
		if i > 0 {
			assert.LessOrEqual(t, entry.Score, rankings.Data[i-1].Score, "scores must be non-increasing")
		}
	}
}

func TestGetRankingsTieBreaksOnCreation(t *testing.T) {
	s := newTestService(t)

	early := mustCreatePlayer(t, s, "EARLY")
	late := mustCreatePlayer(t, s, "LATE")

	_, err := s.SubmitScore(early.ID, 900, 1, 4, 30)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = s.SubmitScore(late.ID, 900, 1, 4, 30)
	require.NoError(t, err)

	rankings, err := s.GetRankings(10)
	require.NoError(t, err)
	require.Len(t, rankings.Data, 2)
	assert.Equal(t, "EARLY", rankings.Data[0].PlayerNickname, "earlier of two equal scores ranks higher")
	assert.Equal(t, "LATE", rankings.Data[1].PlayerNickname)
}

func TestGetRankingsLimitHandling(t *testing.T) {
	s := newTestService(t)
	player := mustCreatePlayer(t, s, "ACE")

	for i := 0; i < 15; i++ {
		_, err := s.SubmitScore(player.ID, i*100, 1, 4, 30)
		require.NoError(t, err)
	}

	defaulted, err := s.GetRankings(0)
	require.NoError(t, err)
	assert.Len(t, defaulted.Data, DefaultLimit)
	assert.Equal(t, int64(15), defaulted.Total)

	clamped, err := s.GetRankings(1_000_000)
	require.NoError(t, err)
	assert.Len(t, clamped.Data, 15, "oversized limits are clamped, not rejected")
}

func TestGetPlayerScores(t *testing.T) {
	s := newTestService(t)
	player := mustCreatePlayer(t, s, "ACE")
	other := mustCreatePlayer(t, s, "OTHER")

	for i := 1; i <= 3; i++ {
		_, err := s.SubmitScore(player.ID, i*100, 1, 4, 30)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}
	_, err := s.SubmitScore(other.ID, 9999, 9, 99, 300)
	require.NoError(t, err)

	scores, err := s.GetPlayerScores(player.ID, 10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	for i, score := range scores {
		assert.Equal(t, player.ID, score.PlayerID)
		if i > 0 {
			assert.False(t, score.CreatedAt.After(scores[i-1].CreatedAt), "history must be newest first")
		}
	}
}

func TestGetPlayerScoresUppercaseIDMatchesStoredPlayer(t *testing.T) {
	s := newTestService(t)

	upper := "550E8400-E29B-41D4-A716-446655440000"
	player, err := s.UpsertPlayer(upper, "ACE")
	require.NoError(t, err)
	_, err = s.SubmitScore(player.ID, 1000, 1, 4, 30)
	require.NoError(t, err)

	scores, err := s.GetPlayerScores(upper, 10)
	require.NoError(t, err)
	assert.Len(t, scores, 1)
}

func TestGetPlayerScoresUnknownPlayerIsEmpty(t *testing.T) {
	s := newTestService(t)

	scores, err := s.GetPlayerScores(uuid.NewString(), 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
	assert.NotNil(t, scores, "empty history serializes as [], not null")
}
