package queuedb

import (
	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// QueueEntry marks one player as waiting to be matched. A player has at most
// one entry; re-adding replaces the join timestamp instead of duplicating.
type QueueEntry struct {
	bun.BaseModel `bun:"table:queue,alias:q"`

	DiscordID types.DiscordID `bun:"discord_id,pk" json:"discord_id"`
	JoinedAt  int64           `bun:"joined_at,notnull" json:"joined_at"` // epoch ms
}
