package server

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/lox/tenpin/bowling"
	"github.com/lox/tenpin/internal/notation"
)

// Error codes reported to clients
const (
	CodeBadRequest   = "bad_request"
	CodeInvalidGame  = "invalid_game"
	CodeInvalidFrame = "invalid_frame"
	CodeSpareBonus   = "spare_bonus"
)

var errNoGame = errors.New("request must contain frames or rolls")

// ScoringService turns requests into scored games. It is shared by the HTTP
// handlers and every websocket connection.
type ScoringService struct {
	logger  *log.Logger
	metrics *Metrics
}

// NewScoringService creates a scoring service
func NewScoringService(logger *log.Logger, metrics *Metrics) *ScoringService {
	return &ScoringService{
		logger:  logger.WithPrefix("scoring"),
		metrics: metrics,
	}
}

// Game converts request data into a game without checking the rules.
func (s *ScoringService) Game(data GameData) (bowling.Game, error) {
	switch {
	case data.Frames != nil:
		return bowling.DecodeGame(data.Frames)
	case data.Rolls != "":
		return notation.ParseRolls(data.Rolls)
	default:
		return nil, errNoGame
	}
}

// Score scores the game in data.
func (s *ScoringService) Score(data GameData) (*ScoreResultData, error) {
	game, err := s.Game(data)
	if err != nil {
		return nil, s.reject(err)
	}

	frames, err := bowling.ScoreFrames(game)
	if err != nil {
		return nil, s.reject(err)
	}

	score := bowling.Total(frames)
	s.metrics.observeScore(score)
	s.logger.Debug("Scored game", "game", game.String(), "score", score)

	return &ScoreResultData{Score: score, Frames: frames}, nil
}

// Validate checks the game in data without reporting a score.
func (s *ScoringService) Validate(data GameData) (*ValidateResultData, error) {
	game, err := s.Game(data)
	if err != nil {
		return nil, s.reject(err)
	}
	if _, err := bowling.ScoreFrames(game); err != nil {
		return nil, s.reject(err)
	}
	return &ValidateResultData{Valid: true, Frames: len(game)}, nil
}

func (s *ScoringService) reject(err error) error {
	code := ErrorCode(err)
	s.metrics.observeRejected(code)
	s.logger.Debug("Rejected game", "code", code, "error", err)
	return err
}

// ErrorCode maps an error to the code reported to clients.
func ErrorCode(err error) string {
	var (
		gameErr  *bowling.InvalidGameError
		frameErr *bowling.InvalidFrameError
		spareErr *bowling.SpareBonusError
	)
	switch {
	case errors.As(err, &gameErr):
		return CodeInvalidGame
	case errors.As(err, &frameErr):
		return CodeInvalidFrame
	case errors.As(err, &spareErr):
		return CodeSpareBonus
	default:
		return CodeBadRequest
	}
}
