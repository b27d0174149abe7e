package userdb

import (
	"database/sql"

	"github.com/scrimmage-club/pug-bot/pkg/types"
	"github.com/uptrace/bun"
)

// User represents one registered player, keyed by Discord identity.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	DiscordID    types.DiscordID `bun:"discord_id,pk" json:"discord_id"`
	SteamID      *string         `bun:"steam_id" json:"steam_id,omitempty"`
	IsVIP        bool            `bun:"is_vip,notnull,default:0" json:"is_vip"`
	Rating       int64           `bun:"rating,notnull,default:1000" json:"rating"`
	PenaltyUntil *int64          `bun:"penalty_until" json:"penalty_until,omitempty"` // epoch ms
}

// DefaultRating is the rating assigned to a user that has never been rated.
const DefaultRating = 1000

// UserUpdate is a partial update for a user row. Every optional column is
// tri-state: a nil pointer means "not provided, keep the stored value"; for
// nullable columns a pointer to an invalid Null value means "set to NULL".
type UserUpdate struct {
	DiscordID    types.DiscordID
	SteamID      *sql.NullString
	IsVIP        *bool
	Rating       *int64
	PenaltyUntil *sql.NullInt64
}

// mergeInto applies the provided fields of the update onto base, which holds
// either the stored row or the column defaults for a new user.
func (upd *UserUpdate) mergeInto(base *User) {
	base.DiscordID = upd.DiscordID
	if upd.SteamID != nil {
		base.SteamID = nil
		if upd.SteamID.Valid {
			v := upd.SteamID.String
			base.SteamID = &v
		}
	}
	if upd.IsVIP != nil {
		base.IsVIP = *upd.IsVIP
	}
	if upd.Rating != nil {
		base.Rating = *upd.Rating
	}
	if upd.PenaltyUntil != nil {
		base.PenaltyUntil = nil
		if upd.PenaltyUntil.Valid {
			v := upd.PenaltyUntil.Int64
			base.PenaltyUntil = &v
		}
	}
}

// Restricted reports whether the user is under a temporary penalty at the
// given epoch-millisecond instant.
func (u *User) Restricted(nowMillis int64) bool {
	return u.PenaltyUntil != nil && *u.PenaltyUntil > nowMillis
}
