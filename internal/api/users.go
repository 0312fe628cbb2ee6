package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/social4sports/sportlink/internal/model"
)

// User fetches a player profile by ID.
func (c *Client) User(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &user); err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return &user, nil
}

// UserStats fetches aggregate match performance for a player.
func (c *Client) UserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	var stats model.UserStats
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/stats", &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch stats for user %s: %w", userID, err)
	}
	return &stats, nil
}

// SearchPlayers runs the geospatial player search.
func (c *Client) SearchPlayers(ctx context.Context, search model.PlayerSearch) ([]model.User, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(search.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(search.Lng, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(search.RadiusKm, 'f', -1, 64))
	if search.SkillLevel != "" {
		q.Set("skillLevel", search.SkillLevel)
	}

	var players []model.User
	if err := c.get(ctx, "/players/search?"+q.Encode(), &players); err != nil {
		return nil, fmt.Errorf("player search failed: %w", err)
	}
	return players, nil
}
