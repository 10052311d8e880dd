package storage

import (
	"context"

	"dmbot/pkg/domain"
)

// ChannelStorage defines persistence operations for registered Dailymotion
// channels. A channel name is unique per user; implementations must surface a
// conflict error (serrors.ErrConflict) when that constraint is violated.
type ChannelStorage interface {
	// StoreChannel inserts a channel and returns the stored row as it exists in
	// the database (including the generated ID and created_at).
	StoreChannel(ctx context.Context, channel domain.Channel) (*domain.Channel, error)
	// UserChannels returns all channels registered by the given user, newest
	// first.
	UserChannels(ctx context.Context, userID domain.UserID) ([]domain.Channel, error)
	// ChannelCountByUser returns the number of channels the user has registered.
	ChannelCountByUser(ctx context.Context, userID domain.UserID) (int64, error)
	// ChannelByID fetches a channel by its ID for the given user. Returns nil
	// when not found.
	ChannelByID(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error)
	// DeleteChannel removes the channel with the given ID belonging to the user
	// and returns the deleted row, or nil if it was not found. Credentials are
	// permanently removed; there is no soft delete for secrets.
	DeleteChannel(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error)
	// UpdateChannelAccessToken replaces the stored OAuth access token for the
	// channel and returns the updated row, or nil if the channel does not exist.
	UpdateChannelAccessToken(ctx context.Context, id domain.ChannelID, token string) (*domain.Channel, error)
}
