package userdb

import (
	"context"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for player records.
//
// Error semantics:
//   - GetUser returns (nil, nil) when no record exists; absence is a result,
//     not a failure.
//   - other errors: infrastructure failures, propagated unchanged.
type Repository interface {
	GetUser(ctx context.Context, db bun.IDB, discordID types.DiscordID) (*User, error)
	UpsertUser(ctx context.Context, db bun.IDB, update UserUpdate) (*User, error)
	SetVIP(ctx context.Context, db bun.IDB, discordID types.DiscordID, vip bool) (*User, error)
}
