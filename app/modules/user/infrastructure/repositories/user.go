package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// UserDBImpl is a repository for player record operations.
type UserDBImpl struct{}

var _ Repository = (*UserDBImpl)(nil)

// GetUser retrieves a player record by Discord ID. A missing record is
// returned as (nil, nil).
func (r *UserDBImpl) GetUser(ctx context.Context, db bun.IDB, discordID types.DiscordID) (*User, error) {
	user := &User{}
	err := db.NewSelect().Model(user).Where("discord_id = ?", discordID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpsertUser merge-writes a partial update: provided fields win, unspecified
// fields keep their stored value, and a brand-new row starts from the column
// defaults. The merged record is written back as one row replacement so the
// operation is atomic with respect to that row.
func (r *UserDBImpl) UpsertUser(ctx context.Context, db bun.IDB, update UserUpdate) (*User, error) {
	if update.DiscordID == "" {
		return nil, fmt.Errorf("discord id is required")
	}

	existing, err := r.GetUser(ctx, db, update.DiscordID)
	if err != nil {
		return nil, err
	}

	merged := &User{Rating: DefaultRating}
	if existing != nil {
		*merged = *existing
	}
	update.mergeInto(merged)

	_, err = db.NewInsert().
		Model(merged).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("steam_id = EXCLUDED.steam_id").
		Set("is_vip = EXCLUDED.is_vip").
		Set("rating = EXCLUDED.rating").
		Set("penalty_until = EXCLUDED.penalty_until").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return merged, nil
}

// SetVIP toggles the VIP flag through the same merge path as UpsertUser, so
// every other field is left untouched.
func (r *UserDBImpl) SetVIP(ctx context.Context, db bun.IDB, discordID types.DiscordID, vip bool) (*User, error) {
	return r.UpsertUser(ctx, db, UserUpdate{DiscordID: discordID, IsVIP: &vip})
}
