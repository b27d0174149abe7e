package matchdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/scrimmage-club/pug-bot/pkg/types"
)

// Repository defines the persistence contract for matches and their player
// associations. The lifecycle here is the contract the matchmaking
// orchestrator honors: create writes the match and its players as one unit,
// then status-only updates advance the machine monotonically.
//
// Error semantics:
//   - ErrNotFound: the match id does not exist
//   - ErrInvalidTransition: status update violates the lifecycle
//   - other errors: infrastructure failures, propagated unchanged.
type Repository interface {
	CreateMatch(ctx context.Context, db bun.IDB, channelID *string, playerIDs []types.DiscordID) (*Match, error)
	GetMatch(ctx context.Context, db bun.IDB, matchID int64) (*Match, error)
	GetMatchPlayers(ctx context.Context, db bun.IDB, matchID int64) ([]MatchPlayer, error)
	ListMatchesByStatus(ctx context.Context, db bun.IDB, status MatchStatus) ([]Match, error)
	UpdateMatchStatus(ctx context.Context, db bun.IDB, matchID int64, status MatchStatus) error
	SetMatchServer(ctx context.Context, db bun.IDB, matchID int64, serverIP, serverPassword string) error
	SetMatchChannel(ctx context.Context, db bun.IDB, matchID int64, channelID string) error
}
