package bundb_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	userdb "github.com/scrimmage-club/pug-bot/app/modules/user/infrastructure/repositories"
	"github.com/scrimmage-club/pug-bot/config"
	"github.com/scrimmage-club/pug-bot/db/bundb"
	"github.com/scrimmage-club/pug-bot/testutils"
)

func TestNewStoreService_RequiresPath(t *testing.T) {
	_, err := bundb.NewStoreService(context.Background(), config.DatabaseConfig{})
	require.Error(t, err)
}

func TestNewStoreService_SchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "state.db")}
	gen := testutils.NewTestDataGenerator(11)
	id := gen.GenerateDiscordID()

	store, err := bundb.NewStoreService(ctx, cfg)
	require.NoError(t, err)
	_, err = store.UserDB.UpsertUser(ctx, store.GetDB(), userdb.UserUpdate{DiscordID: id})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening re-runs the schema step; existing data must survive.
	store, err = bundb.NewStoreService(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	user, err := store.UserDB.GetUser(ctx, store.GetDB(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, id, user.DiscordID)
}

func TestStoreService_SharedHandleTransaction(t *testing.T) {
	store := testutils.NewStore(t)
	gen := testutils.NewTestDataGenerator(11)
	ctx := context.Background()
	id := gen.GenerateDiscordID()

	// The facade exposes one handle so callers can span repositories with a
	// single transaction.
	err := store.GetDB().RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := store.UserDB.UpsertUser(ctx, tx, userdb.UserUpdate{DiscordID: id}); err != nil {
			return err
		}
		return store.QueueDB.Add(ctx, tx, id)
	})
	require.NoError(t, err)

	user, err := store.UserDB.GetUser(ctx, store.GetDB(), id)
	require.NoError(t, err)
	require.NotNil(t, user)

	entries, err := store.QueueDB.List(ctx, store.GetDB())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].DiscordID)
}

func TestStoreService_CloseIsSafeOnNil(t *testing.T) {
	var store *bundb.StoreService
	require.NoError(t, store.Close())
}
