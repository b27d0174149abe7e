package queuedb

import (
	"context"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for the join-queue.
//
// Error semantics:
//   - Remove of an absent entry is a no-op, not an error.
//   - ClearMany is all-or-nothing; ids absent from the queue do not fail the
//     batch.
//   - other errors: infrastructure failures, propagated unchanged.
//
// List makes no ordering promise; callers needing FIFO order sort by JoinedAt.
type Repository interface {
	Add(ctx context.Context, db bun.IDB, discordID types.DiscordID) error
	Remove(ctx context.Context, db bun.IDB, discordID types.DiscordID) error
	List(ctx context.Context, db bun.IDB) ([]QueueEntry, error)
	ClearMany(ctx context.Context, db bun.IDB, discordIDs []types.DiscordID) error
}
