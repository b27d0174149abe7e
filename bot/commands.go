package bot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	commandRefill = 2 * time.Second
	commandBurst  = 3
)

// Slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	manageGuild := int64(discordgo.PermissionManageServer)
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Replies with Pong!",
		},
		{
			Name:        "queue",
			Description: "Join, leave, or inspect the matchmaking queue",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Join the queue (rejoining moves you to the back)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the queue",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "Show everyone currently waiting",
				},
			},
		},
		{
			Name:        "link-steam",
			Description: "Link your Steam account for server invites",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "steam_id",
					Description: "Your SteamID64",
					Required:    true,
				},
			},
		},
		{
			Name:                     "vip",
			Description:              "Grant or revoke VIP status for a player",
			DefaultMemberPermissions: &manageGuild,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "player",
					Description: "The player to update",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "enabled",
					Description: "Whether the player is VIP",
					Required:    true,
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord. An empty guild
// id registers them globally, matching the gateway config contract.
func (b *Bot) registerCommands() error {
	defs := b.getCommandDefinitions()
	registered := make([]*discordgo.ApplicationCommand, 0, len(defs))

	for _, cmd := range defs {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.cfg.Discord.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registered = append(registered, created)
		slog.Debug("registered command", "name", cmd.Name)
	}

	b.commands = registered
	slog.Info("slash commands registered", "count", len(registered), "guild", b.cfg.Discord.GuildID)
	return nil
}
