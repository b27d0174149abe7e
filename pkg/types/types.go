// Package types holds identifier types shared across modules.
package types

// DiscordID is the stable platform identity for a player. It is the primary
// key for user records and queue entries.
type DiscordID string

func (id DiscordID) String() string {
	return string(id)
}
