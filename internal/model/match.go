package model

import "time"

// MatchStatus is the lifecycle state of a scheduled match.
type MatchStatus string

const (
	MatchAwaitingConfirmation MatchStatus = "AwaitingConfirmation"
	MatchConfirmed            MatchStatus = "Confirmed"
	MatchCancelled            MatchStatus = "Cancelled"
	MatchCompleted            MatchStatus = "Completed"
)

// MatchResult is the recorded outcome of a completed match from the current
// user's perspective.
type MatchResult string

const (
	ResultWin  MatchResult = "Win"
	ResultLoss MatchResult = "Loss"
)

// Match is a scheduled or completed match between two players.
type Match struct {
	ID           string      `json:"id"`
	Initiator    User        `json:"initiator"`
	Opponent     User        `json:"opponent"`
	Location     string      `json:"location"`
	ScheduledFor time.Time   `json:"scheduledFor"`
	Status       MatchStatus `json:"status"`
	Result       MatchResult `json:"result,omitempty"`
	Score        []string    `json:"score,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt,omitempty"`
}

// ScheduleMatch are the inputs to scheduling a new match.
type ScheduleMatch struct {
	OpponentID   string    `json:"opponent"`
	Location     string    `json:"location"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

// RecordResult are the inputs to recording a match outcome. Score holds one
// entry per set, formatted "11-7".
type RecordResult struct {
	Result MatchResult `json:"result"`
	Score  []string    `json:"score"`
}
