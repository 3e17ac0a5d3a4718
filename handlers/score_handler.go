package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"classic-tetris-api/models"
	"classic-tetris-api/services"
	"classic-tetris-api/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScoreHandler struct {
	scoreService *services.ScoreService
	logger       *zap.SugaredLogger
}

func NewScoreHandler(scoreService *services.ScoreService, logger *zap.SugaredLogger) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
		logger:       logger,
	}
}

// CreatePlayer registers a player or refreshes an existing one
// @Summary Create or update a player
// @Description Register an anonymous player by client-generated UUID; repeat calls only refresh last_played_at
// @Tags scores
// @Accept json
// @Produce json
// @Param player body models.CreatePlayerRequest true "Player data"
// @Success 200 {object} models.Player
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/players [post]
func (h *ScoreHandler) CreatePlayer(c *gin.Context) {
	var req models.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail: "Invalid request body: " + err.Error(),
		})
		return
	}

	player, err := h.scoreService.UpsertPlayer(req.ID, req.Nickname)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, player)
}

// CreateScore records a completed-game score
// @Summary Save a game score
// @Description Persist one completed-game result for an existing player
// @Tags scores
// @Accept json
// @Produce json
// @Param score body models.CreateScoreRequest true "Score data"
// @Success 200 {object} models.Score
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scores [post]
func (h *ScoreHandler) CreateScore(c *gin.Context) {
	var req models.CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail: "Invalid request body: " + err.Error(),
		})
		return
	}

	score, err := h.scoreService.SubmitScore(req.PlayerID, *req.Score, *req.Level, *req.Lines, *req.PlayTimeSeconds)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// GetRankings returns the global leaderboard
// @Summary Get top scores ranking
// @Description Top scores across all players, highest first
// @Tags scores
// @Produce json
// @Param limit query int false "Number of entries to return (default: 10, max: 100)"
// @Success 200 {object} models.RankingResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scores [get]
func (h *ScoreHandler) GetRankings(c *gin.Context) {
	rankings, err := h.scoreService.GetRankings(limitQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rankings)
}

// GetPlayerScores returns one player's score history
// @Summary Get a player's score history
// @Description Scores submitted by one player, newest first; unknown players yield an empty list
// @Tags scores
// @Produce json
// @Param player_id path string true "Player UUID"
// @Param limit query int false "Number of entries to return (default: 10, max: 100)"
// @Success 200 {array} models.Score
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/scores/{player_id} [get]
func (h *ScoreHandler) GetPlayerScores(c *gin.Context) {
	scores, err := h.scoreService.GetPlayerScores(c.Param("player_id"), limitQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

// respondError maps service errors onto the wire taxonomy: validation
// failures are 422 with field detail, a missing player is 404, anything else
// is a logged 500.
func (h *ScoreHandler) respondError(c *gin.Context, err error) {
	var validationErr *validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Detail: validationErr.Error(),
			Field:  validationErr.Field,
		})
	case errors.Is(err, services.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Detail: "Player not found",
		})
	default:
		h.logger.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Detail: "Internal server error",
		})
	}
}

// limitQuery reads the limit query parameter, falling back to the service
// default when it is absent or not a number.
func limitQuery(c *gin.Context) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(services.DefaultLimit))
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return services.DefaultLimit
	}
	return limit
}
