// Package bot is the chat-platform gateway: it registers slash commands and
// dispatches interactions to the state store, replying synchronously.
package bot

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/scrimmage-club/pug-bot/config"
	"github.com/scrimmage-club/pug-bot/db/bundb"
)

// Bot owns the Discord session and the store handle.
type Bot struct {
	cfg      *config.Config
	session  *discordgo.Session
	store    *bundb.StoreService
	commands []*discordgo.ApplicationCommand

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates the bot and wires the interaction handler. The session is not
// opened until Start.
func New(cfg *config.Config, store *bundb.StoreService) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	b := &Bot{
		cfg:      cfg,
		session:  session,
		store:    store,
		limiters: make(map[string]*rate.Limiter),
	}
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
		slog.Info("logged in", "user", s.State.User.Username)
	})
	return b, nil
}

// Start opens the gateway connection and registers slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close Discord connection: %w", err)
	}
	return nil
}

// limiter returns the per-user command limiter, creating it on first use.
// Three commands of burst, refilling one every two seconds.
func (b *Bot) limiter(userID string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.limiters[userID]
	if !ok {
		l = rate.NewLimiter(rate.Every(commandRefill), commandBurst)
		b.limiters[userID] = l
	}
	return l
}
