package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/scrimmage-club/pug-bot/pkg/types"
)

// MatchDBImpl is a repository for match lifecycle operations.
type MatchDBImpl struct{}

var _ Repository = (*MatchDBImpl)(nil)

// CreateMatch inserts a new PENDING match plus one player association per
// participant, all in one transaction. Duplicate participant ids collapse to
// a single row.
func (r *MatchDBImpl) CreateMatch(ctx context.Context, db bun.IDB, channelID *string, playerIDs []types.DiscordID) (*Match, error) {
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("a match requires at least one player")
	}

	match := &Match{
		CreatedAt: time.Now().UnixMilli(),
		Status:    MatchStatusPending,
		ChannelID: channelID,
	}

	seen := make(map[types.DiscordID]struct{}, len(playerIDs))
	unique := make([]types.DiscordID, 0, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(match).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		players := make([]MatchPlayer, 0, len(unique))
		for _, id := range unique {
			players = append(players, MatchPlayer{MatchID: match.ID, DiscordID: id})
		}
		if _, err := tx.NewInsert().Model(&players).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create match players: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return match, nil
}

// GetMatch retrieves a match by id.
func (r *MatchDBImpl) GetMatch(ctx context.Context, db bun.IDB, matchID int64) (*Match, error) {
	match := &Match{}
	err := db.NewSelect().Model(match).Where("id = ?", matchID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return match, nil
}

// GetMatchPlayers retrieves the player associations for a match.
func (r *MatchDBImpl) GetMatchPlayers(ctx context.Context, db bun.IDB, matchID int64) ([]MatchPlayer, error) {
	var players []MatchPlayer
	err := db.NewSelect().Model(&players).Where("match_id = ?", matchID).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get match players: %w", err)
	}
	return players, nil
}

// ListMatchesByStatus returns all matches currently in the given state.
func (r *MatchDBImpl) ListMatchesByStatus(ctx context.Context, db bun.IDB, status MatchStatus) ([]Match, error) {
	var matches []Match
	err := db.NewSelect().Model(&matches).Where("status = ?", status).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// UpdateMatchStatus advances the lifecycle. The read and the write share one
// transaction so a concurrent update cannot slip a state change in between.
func (r *MatchDBImpl) UpdateMatchStatus(ctx context.Context, db bun.IDB, matchID int64, status MatchStatus) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		match, err := r.GetMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if !match.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, match.Status, status)
		}
		_, err = tx.NewUpdate().
			Model((*Match)(nil)).
			Set("status = ?", status).
			Where("id = ?", matchID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update match status: %w", err)
		}
		return nil
	})
}

// SetMatchServer populates the connection details for a provisioned server.
// Expected no later than the ACTIVE transition; rejected once terminal.
func (r *MatchDBImpl) SetMatchServer(ctx context.Context, db bun.IDB, matchID int64, serverIP, serverPassword string) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		match, err := r.GetMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.Status.IsTerminal() {
			return fmt.Errorf("%w: cannot set server details on %s match", ErrInvalidTransition, match.Status)
		}
		_, err = tx.NewUpdate().
			Model((*Match)(nil)).
			Set("server_ip = ?", serverIP).
			Set("server_password = ?", serverPassword).
			Where("id = ?", matchID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set match server details: %w", err)
		}
		return nil
	})
}

// SetMatchChannel records the communication channel created for the match.
// Legal only while the match is still PENDING.
func (r *MatchDBImpl) SetMatchChannel(ctx context.Context, db bun.IDB, matchID int64, channelID string) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		match, err := r.GetMatch(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.Status != MatchStatusPending {
			return fmt.Errorf("%w: cannot set channel on %s match", ErrInvalidTransition, match.Status)
		}
		_, err = tx.NewUpdate().
			Model((*Match)(nil)).
			Set("channel_id = ?", channelID).
			Where("id = ?", matchID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to set match channel: %w", err)
		}
		return nil
	})
}
