package matchdb

import (
	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// MatchStatus is the lifecycle state of a formed match.
type MatchStatus string

const (
	// MatchStatusPending: match created, no server yet.
	MatchStatusPending MatchStatus = "PENDING"
	// MatchStatusProvisioning: game server being allocated.
	MatchStatusProvisioning MatchStatus = "PROVISIONING"
	// MatchStatusActive: server details populated, players notified.
	MatchStatusActive MatchStatus = "ACTIVE"
	// MatchStatusCompleted is terminal.
	MatchStatusCompleted MatchStatus = "COMPLETED"
	// MatchStatusCancelled is terminal, reachable from any non-terminal state.
	MatchStatusCancelled MatchStatus = "CANCELLED"
)

var statusRank = map[MatchStatus]int{
	MatchStatusPending:      0,
	MatchStatusProvisioning: 1,
	MatchStatusActive:       2,
	MatchStatusCompleted:    3,
	MatchStatusCancelled:    3,
}

// IsValid reports whether s is a known lifecycle state.
func (s MatchStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether a match in this state can never advance again.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusCompleted || s == MatchStatusCancelled
}

// CanTransitionTo enforces the monotonic lifecycle: states only move forward
// along PENDING -> PROVISIONING -> ACTIVE -> COMPLETED, COMPLETED requires an
// ACTIVE match, and CANCELLED is reachable from any non-terminal state.
func (s MatchStatus) CanTransitionTo(next MatchStatus) bool {
	if !s.IsValid() || !next.IsValid() || s.IsTerminal() {
		return false
	}
	if next == MatchStatusCancelled {
		return true
	}
	if next == MatchStatusCompleted {
		return s == MatchStatusActive
	}
	return statusRank[next] > statusRank[s]
}

// Match is one formed match progressing through the provisioning lifecycle.
// Rows are retained as history and never deleted.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID             int64       `bun:"id,pk,autoincrement" json:"id"`
	CreatedAt      int64       `bun:"created_at,notnull" json:"created_at"` // epoch ms
	Status         MatchStatus `bun:"status,notnull" json:"status"`
	ChannelID      *string     `bun:"channel_id" json:"channel_id,omitempty"`
	ServerIP       *string     `bun:"server_ip" json:"server_ip,omitempty"`
	ServerPassword *string     `bun:"server_password" json:"server_password,omitempty"`
}

// MatchPlayer links one participant to a match. Rows are created in the same
// transaction as their parent Match and live as long as it does.
type MatchPlayer struct {
	bun.BaseModel `bun:"table:match_players,alias:mp"`

	MatchID   int64           `bun:"match_id,pk" json:"match_id"`
	DiscordID types.DiscordID `bun:"discord_id,pk" json:"discord_id"`
}
