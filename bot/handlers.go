package bot

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	queuedb "github.com/scrimmage-club/pug-bot/app/modules/queue/infrastructure/repositories"
	userdb "github.com/scrimmage-club/pug-bot/app/modules/user/infrastructure/repositories"
	"github.com/scrimmage-club/pug-bot/observability"
	"github.com/scrimmage-club/pug-bot/pkg/types"
)

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	userID := interactionUserID(i)
	if userID == "" {
		return
	}
	if !b.limiter(userID).Allow() {
		b.respond(s, i, "Slow down a little and try again.", true)
		return
	}

	data := i.ApplicationCommandData()
	ctx := context.Background()

	var err error
	switch data.Name {
	case "ping":
		err = b.handlePing(s, i)
	case "queue":
		err = b.handleQueue(ctx, s, i, data)
	case "link-steam":
		err = b.handleLinkSteam(ctx, s, i, data)
	case "vip":
		err = b.handleVIP(ctx, s, i, data)
	default:
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		slog.Error("command failed", "command", data.Name, "user", userID, "error", err)
		b.respond(s, i, "Something went wrong, try again later.", true)
	}
	observability.CommandsTotal.WithLabelValues(data.Name, outcome).Inc()
}

func (b *Bot) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	b.respond(s, i, "Pong!", false)
	return nil
}

func (b *Bot) handleQueue(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	if len(data.Options) == 0 {
		return fmt.Errorf("queue command without subcommand")
	}
	userID := types.DiscordID(interactionUserID(i))
	db := b.store.GetDB()

	switch data.Options[0].Name {
	case "join":
		// Referencing an unknown id creates the user record.
		user, err := b.store.UserDB.UpsertUser(ctx, db, userdb.UserUpdate{DiscordID: userID})
		if err != nil {
			observability.StoreFailuresTotal.WithLabelValues("upsert_user").Inc()
			return err
		}
		if user.Restricted(time.Now().UnixMilli()) {
			until := time.UnixMilli(*user.PenaltyUntil).UTC()
			b.respond(s, i, fmt.Sprintf("You are under a penalty until %s.", until.Format(time.RFC1123)), true)
			return nil
		}
		if err := b.store.QueueDB.Add(ctx, db, userID); err != nil {
			observability.StoreFailuresTotal.WithLabelValues("queue_add").Inc()
			return err
		}
		entries, err := b.store.QueueDB.List(ctx, db)
		if err != nil {
			observability.StoreFailuresTotal.WithLabelValues("queue_list").Inc()
			return err
		}
		observability.QueueDepth.Set(float64(len(entries)))
		b.respond(s, i, fmt.Sprintf("You're in. %d player(s) waiting.", len(entries)), false)
		return nil

	case "leave":
		if err := b.store.QueueDB.Remove(ctx, db, userID); err != nil {
			observability.StoreFailuresTotal.WithLabelValues("queue_remove").Inc()
			return err
		}
		b.respond(s, i, "You left the queue.", true)
		return nil

	case "list":
		entries, err := b.store.QueueDB.List(ctx, db)
		if err != nil {
			observability.StoreFailuresTotal.WithLabelValues("queue_list").Inc()
			return err
		}
		observability.QueueDepth.Set(float64(len(entries)))
		b.respond(s, i, formatQueue(entries), false)
		return nil
	}
	return fmt.Errorf("unknown queue subcommand %q", data.Options[0].Name)
}

func (b *Bot) handleLinkSteam(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	steamID := strings.TrimSpace(stringOption(data.Options, "steam_id"))
	if steamID == "" {
		b.respond(s, i, "A SteamID is required.", true)
		return nil
	}
	userID := types.DiscordID(interactionUserID(i))
	_, err := b.store.UserDB.UpsertUser(ctx, b.store.GetDB(), userdb.UserUpdate{
		DiscordID: userID,
		SteamID:   &sql.NullString{String: steamID, Valid: true},
	})
	if err != nil {
		observability.StoreFailuresTotal.WithLabelValues("upsert_user").Inc()
		return err
	}
	b.respond(s, i, "Steam account linked.", true)
	return nil
}

func (b *Bot) handleVIP(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) error {
	var target string
	var enabled bool
	for _, opt := range data.Options {
		switch opt.Name {
		case "player":
			if u := opt.UserValue(nil); u != nil {
				target = u.ID
			}
		case "enabled":
			enabled = opt.BoolValue()
		}
	}
	if target == "" {
		b.respond(s, i, "A player is required.", true)
		return nil
	}
	user, err := b.store.UserDB.SetVIP(ctx, b.store.GetDB(), types.DiscordID(target), enabled)
	if err != nil {
		observability.StoreFailuresTotal.WithLabelValues("set_vip").Inc()
		return err
	}
	state := "no longer"
	if user.IsVIP {
		state = "now"
	}
	b.respond(s, i, fmt.Sprintf("<@%s> is %s VIP.", target, state), false)
	return nil
}

// formatQueue renders the waiting list in FIFO order. The repository makes no
// ordering promise, so the caller sorts by join time.
func formatQueue(entries []queuedb.QueueEntry) string {
	if len(entries) == 0 {
		return "The queue is empty."
	}
	sorted := make([]queuedb.QueueEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].JoinedAt < sorted[b].JoinedAt })

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d player(s) waiting:\n", len(sorted))
	for n, e := range sorted {
		fmt.Fprintf(&sb, "%d. <@%s> (joined <t:%d:R>)\n", n+1, e.DiscordID, e.JoinedAt/1000)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// stringOption returns the named string option, or "" when absent.
func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// interactionUserID resolves the invoking user for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content, Flags: flags},
	})
	if err != nil {
		slog.Error("failed to respond to interaction", "error", err)
	}
}
