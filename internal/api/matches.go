package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/social4sports/sportlink/internal/model"
)

// UpcomingMatches lists matches that have not been played yet.
func (c *Client) UpcomingMatches(ctx context.Context) ([]model.Match, error) {
	var matches []model.Match
	if err := c.get(ctx, "/matches/upcoming", &matches); err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming matches: %w", err)
	}
	return matches, nil
}

// PastMatches lists completed matches.
func (c *Client) PastMatches(ctx context.Context) ([]model.Match, error) {
	var matches []model.Match
	if err := c.get(ctx, "/matches/history", &matches); err != nil {
		return nil, fmt.Errorf("failed to fetch match history: %w", err)
	}
	return matches, nil
}

// ScheduleMatch proposes a new match to an opponent.
func (c *Client) ScheduleMatch(ctx context.Context, data model.ScheduleMatch) (*model.Match, error) {
	var match model.Match
	if err := c.post(ctx, "/matches", data, &match); err != nil {
		return nil, fmt.Errorf("failed to schedule match: %w", err)
	}
	return &match, nil
}

// ConfirmMatch accepts a match invitation.
func (c *Client) ConfirmMatch(ctx context.Context, matchID string) (*model.Match, error) {
	var match model.Match
	if err := c.put(ctx, "/matches/"+url.PathEscape(matchID)+"/confirm", nil, &match); err != nil {
		return nil, fmt.Errorf("failed to confirm match: %w", err)
	}
	return &match, nil
}

// CancelMatch cancels a scheduled match.
func (c *Client) CancelMatch(ctx context.Context, matchID string) error {
	if err := c.delete(ctx, "/matches/"+url.PathEscape(matchID)); err != nil {
		return fmt.Errorf("failed to cancel match: %w", err)
	}
	return nil
}

// RecordResult records the outcome of a completed match.
func (c *Client) RecordResult(ctx context.Context, matchID string, data model.RecordResult) (*model.Match, error) {
	var match model.Match
	if err := c.put(ctx, "/matches/"+url.PathEscape(matchID)+"/result", data, &match); err != nil {
		return nil, fmt.Errorf("failed to record result: %w", err)
	}
	return &match, nil
}
