package queuedb

import (
	"context"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	AddFn       func(ctx context.Context, db bun.IDB, discordID types.DiscordID) error
	RemoveFn    func(ctx context.Context, db bun.IDB, discordID types.DiscordID) error
	ListFn      func(ctx context.Context, db bun.IDB) ([]QueueEntry, error)
	ClearManyFn func(ctx context.Context, db bun.IDB, discordIDs []types.DiscordID) error
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) Add(ctx context.Context, db bun.IDB, discordID types.DiscordID) error {
	if f.AddFn != nil {
		return f.AddFn(ctx, db, discordID)
	}
	return nil
}

func (f *FakeRepository) Remove(ctx context.Context, db bun.IDB, discordID types.DiscordID) error {
	if f.RemoveFn != nil {
		return f.RemoveFn(ctx, db, discordID)
	}
	return nil
}

func (f *FakeRepository) List(ctx context.Context, db bun.IDB) ([]QueueEntry, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, db)
	}
	return nil, nil
}

func (f *FakeRepository) ClearMany(ctx context.Context, db bun.IDB, discordIDs []types.DiscordID) error {
	if f.ClearManyFn != nil {
		return f.ClearManyFn(ctx, db, discordIDs)
	}
	return nil
}
