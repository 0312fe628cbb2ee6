package social

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/social4sports/sportlink/internal/model"
	"github.com/social4sports/sportlink/pkg/logger"
)

// MatchAPI is the REST surface the match service consumes.
type MatchAPI interface {
	UpcomingMatches(ctx context.Context) ([]model.Match, error)
	PastMatches(ctx context.Context) ([]model.Match, error)
	ScheduleMatch(ctx context.Context, data model.ScheduleMatch) (*model.Match, error)
	ConfirmMatch(ctx context.Context, matchID string) (*model.Match, error)
	CancelMatch(ctx context.Context, matchID string) error
	RecordResult(ctx context.Context, matchID string, data model.RecordResult) (*model.Match, error)
}

var setScorePattern = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)

// maxSets bounds how many sets a recorded score may carry.
const maxSets = 7

// ValidateScore checks a per-set score list: at least one set, each
// formatted "NN-NN" with distinct sides.
func ValidateScore(score []string) error {
	if len(score) == 0 {
		return errors.New("score must include at least one set")
	}
	if len(score) > maxSets {
		return fmt.Errorf("score lists %d sets, maximum is %d", len(score), maxSets)
	}
	for i, set := range score {
		set = strings.TrimSpace(set)
		if !setScorePattern.MatchString(set) {
			return fmt.Errorf("set %d has malformed score %q, want e.g. \"11-7\"", i+1, set)
		}
		parts := strings.SplitN(set, "-", 2)
		if parts[0] == parts[1] {
			return fmt.Errorf("set %d is a tie (%q), sets cannot be drawn", i+1, set)
		}
	}
	return nil
}

// Matches wraps the match lifecycle with local validation. All operations
// are fire-and-forget against the REST endpoint; failure leaves no local
// residue to roll back.
type Matches struct {
	api    MatchAPI
	logger *logger.Logger
}

// NewMatches creates the match lifecycle service.
func NewMatches(matchAPI MatchAPI, log *logger.Logger) *Matches {
	return &Matches{api: matchAPI, logger: log.WithComponent("matches")}
}

// Upcoming lists matches not yet played.
func (m *Matches) Upcoming(ctx context.Context) ([]model.Match, error) {
	return m.api.UpcomingMatches(ctx)
}

// History lists completed matches.
func (m *Matches) History(ctx context.Context) ([]model.Match, error) {
	return m.api.PastMatches(ctx)
}

// Schedule proposes a match after validating the inputs locally.
func (m *Matches) Schedule(ctx context.Context, data model.ScheduleMatch) (*model.Match, error) {
	if data.OpponentID == "" {
		return nil, errors.New("opponent is required")
	}
	if strings.TrimSpace(data.Location) == "" {
		return nil, errors.New("location is required")
	}
	if data.ScheduledFor.Before(time.Now()) {
		return nil, errors.New("scheduled time is in the past")
	}
	return m.api.ScheduleMatch(ctx, data)
}

// Confirm accepts a match invitation.
func (m *Matches) Confirm(ctx context.Context, matchID string) (*model.Match, error) {
	return m.api.ConfirmMatch(ctx, matchID)
}

// Cancel cancels a scheduled match.
func (m *Matches) Cancel(ctx context.Context, matchID string) error {
	return m.api.CancelMatch(ctx, matchID)
}

// Record records a match outcome after validating result and score.
func (m *Matches) Record(ctx context.Context, matchID string, result model.MatchResult, score []string) (*model.Match, error) {
	if result != model.ResultWin && result != model.ResultLoss {
		return nil, fmt.Errorf("invalid result %q", result)
	}
	if err := ValidateScore(score); err != nil {
		return nil, err
	}
	return m.api.RecordResult(ctx, matchID, model.RecordResult{Result: result, Score: score})
}
