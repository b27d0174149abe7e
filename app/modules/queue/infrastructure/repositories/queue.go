package queuedb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// QueueDBImpl is a repository for join-queue operations.
type QueueDBImpl struct{}

var _ Repository = (*QueueDBImpl)(nil)

// Add inserts or replaces the player's queue entry with joined_at = now.
// Replacing on re-add resets the player's position to the back of the queue.
func (r *QueueDBImpl) Add(ctx context.Context, db bun.IDB, discordID types.DiscordID) error {
	entry := &QueueEntry{
		DiscordID: discordID,
		JoinedAt:  time.Now().UnixMilli(),
	}
	_, err := db.NewInsert().
		Model(entry).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("joined_at = EXCLUDED.joined_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add queue entry: %w", err)
	}
	return nil
}

// Remove deletes the player's queue entry. Deleting an absent entry is a
// no-op.
func (r *QueueDBImpl) Remove(ctx context.Context, db bun.IDB, discordID types.DiscordID) error {
	_, err := db.NewDelete().
		Model((*QueueEntry)(nil)).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return nil
}

// List returns all current queue entries in no particular order.
func (r *QueueDBImpl) List(ctx context.Context, db bun.IDB) ([]QueueEntry, error) {
	var entries []QueueEntry
	if err := db.NewSelect().Model(&entries).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	return entries, nil
}

// ClearMany removes a batch of entries in one transaction: either every
// listed row is gone afterwards or, on failure, none are. Ids that were never
// queued are ignored. This is what a matchmaker calls after forming a match,
// so a crash mid-removal cannot leave matched players marked as waiting.
func (r *QueueDBImpl) ClearMany(ctx context.Context, db bun.IDB, discordIDs []types.DiscordID) error {
	if len(discordIDs) == 0 {
		return nil
	}
	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		for _, id := range discordIDs {
			if _, err := tx.NewDelete().
				Model((*QueueEntry)(nil)).
				Where("discord_id = ?", id).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to clear queue entry %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear queue entries: %w", err)
	}
	return nil
}
