// Package testutils provides an in-memory store and seeded test data for
// repository and facade tests.
package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/scrimmage-club/pug-bot/config"
	"github.com/scrimmage-club/pug-bot/db/bundb"
	"github.com/scrimmage-club/pug-bot/pkg/types"
)

// NewStore opens a store over an in-memory SQLite database. The single pinned
// connection keeps the memory database alive for the test's lifetime.
func NewStore(t *testing.T) *bundb.StoreService {
	t.Helper()
	store, err := bundb.NewStoreService(context.Background(), config.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test store: %v", err)
		}
	})
	return store
}

// TestDataGenerator provides methods to create test data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// GenerateDiscordID returns a plausible snowflake-style Discord id.
func (g *TestDataGenerator) GenerateDiscordID() types.DiscordID {
	return types.DiscordID(g.faker.DigitN(18))
}

// GenerateDiscordIDs returns count distinct ids.
func (g *TestDataGenerator) GenerateDiscordIDs(count int) []types.DiscordID {
	seen := make(map[types.DiscordID]struct{}, count)
	ids := make([]types.DiscordID, 0, count)
	for len(ids) < count {
		id := g.GenerateDiscordID()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// GenerateSteamID returns a plausible SteamID64.
func (g *TestDataGenerator) GenerateSteamID() string {
	return "7656119" + g.faker.DigitN(10)
}

// GenerateRating returns a rating in the range real players end up in.
func (g *TestDataGenerator) GenerateRating() int64 {
	return int64(g.faker.Number(500, 2500))
}

// GenerateServerIP returns host:port connection details.
func (g *TestDataGenerator) GenerateServerIP() string {
	return fmt.Sprintf("%s:%d", g.faker.IPv4Address(), g.faker.Number(27015, 27100))
}
