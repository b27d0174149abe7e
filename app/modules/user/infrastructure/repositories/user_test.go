package userdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	userdb "github.com/scrimmage-club/pug-bot/app/modules/user/infrastructure/repositories"
	"github.com/scrimmage-club/pug-bot/testutils"
)

func TestUserDBImpl_GetUser_Missing(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)

	user, err := store.UserDB.GetUser(context.Background(), store.GetDB(), gen.GenerateDiscordID())
	require.NoError(t, err)
	require.Nil(t, user, "a miss is an absent result, not an error")
}

func TestUserDBImpl_UpsertUser_NewUserDefaults(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	created, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{DiscordID: id})
	require.NoError(t, err)

	want := &userdb.User{
		DiscordID: id,
		IsVIP:     false,
		Rating:    userdb.DefaultRating,
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Errorf("created user mismatch (-want +got):\n%s", diff)
	}

	stored, err := store.UserDB.GetUser(ctx, store.GetDB(), id)
	require.NoError(t, err)
	if diff := cmp.Diff(want, stored); diff != "" {
		t.Errorf("stored user mismatch (-want +got):\n%s", diff)
	}
}

func TestUserDBImpl_UpsertUser_MergeKeepsUnspecifiedFields(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	rating := int64(1200)
	_, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID: id,
		Rating:    &rating,
	})
	require.NoError(t, err)

	vip := true
	merged, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID: id,
		IsVIP:     &vip,
	})
	require.NoError(t, err)

	require.True(t, merged.IsVIP)
	require.Equal(t, int64(1200), merged.Rating, "rating must be untouched by a vip-only update")
	require.Nil(t, merged.SteamID)
	require.Nil(t, merged.PenaltyUntil)
}

func TestUserDBImpl_UpsertUser_EmptyPartialIsIdempotent(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	steamID := gen.GenerateSteamID()
	rating := gen.GenerateRating()
	vip := true
	penalty := int64(1_900_000_000_000)
	first, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID:    id,
		SteamID:      &sql.NullString{String: steamID, Valid: true},
		IsVIP:        &vip,
		Rating:       &rating,
		PenaltyUntil: &sql.NullInt64{Int64: penalty, Valid: true},
	})
	require.NoError(t, err)

	second, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{DiscordID: id})
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("empty partial changed the record (-first +second):\n%s", diff)
	}
}

func TestUserDBImpl_UpsertUser_ExplicitNullClearsField(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	_, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID: id,
		SteamID:   &sql.NullString{String: gen.GenerateSteamID(), Valid: true},
	})
	require.NoError(t, err)

	cleared, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID: id,
		SteamID:   &sql.NullString{},
	})
	require.NoError(t, err)
	require.Nil(t, cleared.SteamID, "explicit null must clear the stored value")

	stored, err := store.UserDB.GetUser(ctx, store.GetDB(), id)
	require.NoError(t, err)
	require.Nil(t, stored.SteamID)
}

func TestUserDBImpl_UpsertUser_RoundTrip(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	steamID := gen.GenerateSteamID()
	rating := gen.GenerateRating()
	vip := true
	penalty := int64(1_800_000_000_123)
	written, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{
		DiscordID:    id,
		SteamID:      &sql.NullString{String: steamID, Valid: true},
		IsVIP:        &vip,
		Rating:       &rating,
		PenaltyUntil: &sql.NullInt64{Int64: penalty, Valid: true},
	})
	require.NoError(t, err)

	read, err := store.UserDB.GetUser(ctx, store.GetDB(), id)
	require.NoError(t, err)
	if diff := cmp.Diff(written, read); diff != "" {
		t.Errorf("round trip mismatch (-written +read):\n%s", diff)
	}
	require.Equal(t, steamID, *read.SteamID)
	require.Equal(t, penalty, *read.PenaltyUntil)
}

func TestUserDBImpl_SetVIP(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(42)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	rating := int64(1450)
	_, err := store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{DiscordID: id, Rating: &rating})
	require.NoError(t, err)

	user, err := store.UserDB.SetVIP(ctx, store.GetDB(), id, true)
	require.NoError(t, err)
	require.True(t, user.IsVIP)
	require.Equal(t, int64(1450), user.Rating, "SetVIP goes through the merge path and keeps other fields")

	user, err = store.UserDB.SetVIP(ctx, store.GetDB(), id, false)
	require.NoError(t, err)
	require.False(t, user.IsVIP)
}

func TestUser_Restricted(t *testing.T) {
	now := int64(1_700_000_000_000)
	future := now + 60_000
	past := now - 60_000

	tests := []struct {
		name string
		user userdb.User
		want bool
	}{
		{name: "no penalty", user: userdb.User{}, want: false},
		{name: "penalty in future", user: userdb.User{PenaltyUntil: &future}, want: true},
		{name: "penalty expired", user: userdb.User{PenaltyUntil: &past}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.user.Restricted(now))
		})
	}
}
