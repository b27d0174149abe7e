package userdb

import (
	"context"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	GetUserFn    func(ctx context.Context, db bun.IDB, discordID types.DiscordID) (*User, error)
	UpsertUserFn func(ctx context.Context, db bun.IDB, update UserUpdate) (*User, error)
	SetVIPFn     func(ctx context.Context, db bun.IDB, discordID types.DiscordID, vip bool) (*User, error)
}

var _ Repository = (*FakeRepository)(nil)

func (f *FakeRepository) GetUser(ctx context.Context, db bun.IDB, discordID types.DiscordID) (*User, error) {
	if f.GetUserFn != nil {
		return f.GetUserFn(ctx, db, discordID)
	}
	return nil, nil
}

func (f *FakeRepository) UpsertUser(ctx context.Context, db bun.IDB, update UserUpdate) (*User, error) {
	if f.UpsertUserFn != nil {
		return f.UpsertUserFn(ctx, db, update)
	}
	return nil, nil
}

func (f *FakeRepository) SetVIP(ctx context.Context, db bun.IDB, discordID types.DiscordID, vip bool) (*User, error) {
	if f.SetVIPFn != nil {
		return f.SetVIPFn(ctx, db, discordID, vip)
	}
	return nil, nil
}
