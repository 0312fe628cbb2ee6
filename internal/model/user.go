package model

import "time"

// GeoPoint is a GeoJSON-style location attached to a player profile.
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// User is a player profile as returned by the backend.
type User struct {
	ID         string    `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	SkillLevel string    `json:"skillLevel,omitempty"`
	Location   *GeoPoint `json:"location,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// UserStats holds aggregate match performance for a player.
type UserStats struct {
	MatchesPlayed        int     `json:"matchesPlayed"`
	WinRate              float64 `json:"winRate"`
	AveragePointsFor     string  `json:"averagePointsFor"`
	AveragePointsAgainst string  `json:"averagePointsAgainst"`
	LongestStreak        int     `json:"longestStreak"`
}

// Credentials are the inputs to a login exchange.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration are the inputs to a signup exchange.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the result of a successful login or signup.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// PlayerSearch are the query parameters for the geospatial player search.
type PlayerSearch struct {
	Lat        float64
	Lng        float64
	RadiusKm   float64
	SkillLevel string
}
