package bot

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	queuedb "github.com/scrimmage-club/pug-bot/app/modules/queue/infrastructure/repositories"
)

func TestFormatQueue(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		require.Equal(t, "The queue is empty.", formatQueue(nil))
	})

	t.Run("fifo order by join time", func(t *testing.T) {
		entries := []queuedb.QueueEntry{
			{DiscordID: "late", JoinedAt: 3_000},
			{DiscordID: "first", JoinedAt: 1_000},
			{DiscordID: "middle", JoinedAt: 2_000},
		}
		out := formatQueue(entries)
		require.True(t, strings.HasPrefix(out, "3 player(s) waiting:"))
		first := strings.Index(out, "<@first>")
		middle := strings.Index(out, "<@middle>")
		late := strings.Index(out, "<@late>")
		require.Greater(t, first, -1)
		require.Less(t, first, middle)
		require.Less(t, middle, late)
	})
}

func TestStringOption(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "steam_id", Type: discordgo.ApplicationCommandOptionString, Value: "76561198000000001"},
	}
	require.Equal(t, "76561198000000001", stringOption(opts, "steam_id"))
	require.Equal(t, "", stringOption(opts, "missing"))
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "guild-user"}},
	}}
	require.Equal(t, "guild-user", interactionUserID(guild))

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "dm-user"},
	}}
	require.Equal(t, "dm-user", interactionUserID(dm))

	empty := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}
	require.Equal(t, "", interactionUserID(empty))
}

func TestLimiter_PerUserBurst(t *testing.T) {
	b := &Bot{limiters: make(map[string]*rate.Limiter)}

	for n := 0; n < commandBurst; n++ {
		require.True(t, b.limiter("spammer").Allow(), "burst slot %d", n)
	}
	require.False(t, b.limiter("spammer").Allow(), "burst exhausted")
	require.True(t, b.limiter("someone-else").Allow(), "limits are per user")
}
