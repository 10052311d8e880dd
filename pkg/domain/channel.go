package domain

import "time"

// ChannelID uniquely identifies a registered Dailymotion channel.
// It wraps the database-generated serial identifier to provide type safety at
// the domain layer.
type ChannelID int64

// UserID identifies the Telegram user who owns a channel. Telegram user
// identifiers are 64-bit integers.
type UserID int64

// Channel represents a Dailymotion account registered by a Telegram user.
// The (UserID, Name) pair is unique: a user cannot register two channels under
// the same friendly name.
type Channel struct {
	// ID is the unique identifier of the channel record.
	ID ChannelID `json:"id"`
	// UserID is the Telegram user who registered the channel.
	UserID UserID `json:"userId"`

	// Name is the user-chosen friendly name for the channel.
	Name string `json:"name"`
	// APIKey is the Dailymotion application API key.
	APIKey string `json:"-"`
	// APISecret is the Dailymotion application API secret.
	APISecret string `json:"-"`
	// Username is the Dailymotion account username.
	Username string `json:"username"`
	// Password is the Dailymotion account password.
	Password string `json:"-"`
	// AccessToken is the last OAuth access token obtained for this channel.
	// Empty when no token has been stored yet.
	AccessToken string `json:"-"`

	// CreatedAt is the time when the channel was registered.
	CreatedAt time.Time `json:"createdAt"`
}
