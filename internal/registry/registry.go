// Package registry manages the Dailymotion channels registered by Telegram
// users. It validates channel credentials before persisting them and scopes
// every operation to the owning user.
package registry

import (
	"context"
	"fmt"
	"strings"

	"dmbot/pkg/domain"
	"dmbot/pkg/serrors"
	"dmbot/pkg/storage"
)

const (
	// maxChannelNameLength bounds the user-chosen friendly name.
	maxChannelNameLength = 50
	// minCredentialLength is the minimum length accepted for Dailymotion API
	// keys and secrets.
	minCredentialLength = 10
)

// NewChannel carries the fields required to register a channel. All fields are
// validated by Add before anything is persisted.
type NewChannel struct {
	Name      string
	APIKey    string
	APISecret string
	Username  string
	Password  string
}

// registry is the concrete implementation of the Registry interface.
type registry struct {
	storage storage.Storage
}

// New returns a Registry backed by the given storage.
func New(strg storage.Storage) Registry {
	return registry{storage: strg}
}

// Add validates and persists a new channel for the given user. Registering a
// second channel under the same name for the same user fails with a conflict
// error.
func (r registry) Add(ctx context.Context, userID domain.UserID, channel NewChannel) (*domain.Channel, error) {
	if err := validateNewChannel(channel); err != nil {
		return nil, err
	}

	stored, err := r.storage.StoreChannel(ctx, domain.Channel{
		UserID:    userID,
		Name:      strings.TrimSpace(channel.Name),
		APIKey:    channel.APIKey,
		APISecret: channel.APISecret,
		Username:  channel.Username,
		Password:  channel.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store channel: %w", err)
	}

	return stored, nil
}

// List returns all channels registered by the user, newest first.
func (r registry) List(ctx context.Context, userID domain.UserID) ([]domain.Channel, error) {
	channels, err := r.storage.UserChannels(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list channels: %w", err)
	}

	return channels, nil
}

// Get fetches a single channel owned by the user.
func (r registry) Get(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error) {
	channel, err := r.storage.ChannelByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get channel: %w", err)
	}
	if channel == nil {
		return nil, serrors.With(serrors.ErrNotFound, "channel not found")
	}

	return channel, nil
}

// Remove deletes the channel and returns the removed row. Stored credentials
// are gone after this call.
func (r registry) Remove(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error) {
	channel, err := r.storage.DeleteChannel(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("could not delete channel: %w", err)
	}
	if channel == nil {
		return nil, serrors.With(serrors.ErrNotFound, "channel not found")
	}

	return channel, nil
}

// Count returns the number of channels the user has registered.
func (r registry) Count(ctx context.Context, userID domain.UserID) (int64, error) {
	count, err := r.storage.ChannelCountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not count channels: %w", err)
	}

	return count, nil
}

// SaveAccessToken stores the OAuth access token obtained for the channel. The
// ownership check and the update run in a single transaction so a concurrent
// delete cannot resurrect the token.
func (r registry) SaveAccessToken(ctx context.Context,
	userID domain.UserID,
	id domain.ChannelID,
	token string) (*domain.Channel, error) {
	var updated *domain.Channel

	if err := r.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		channel, err := tx.ChannelByID(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("could not get channel: %w", err)
		}
		if channel == nil {
			return serrors.With(serrors.ErrNotFound, "channel not found")
		}

		updated, err = tx.UpdateChannelAccessToken(ctx, id, token)
		if err != nil {
			return fmt.Errorf("could not update access token: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

func validateNewChannel(channel NewChannel) error {
	name := strings.TrimSpace(channel.Name)
	if name == "" || len(name) > maxChannelNameLength {
		return serrors.With(serrors.ErrBadRequest,
			"channel name must be between 1 and %d characters", maxChannelNameLength)
	}
	if len(channel.APIKey) < minCredentialLength {
		return serrors.With(serrors.ErrBadRequest, "API key is too short")
	}
	if len(channel.APISecret) < minCredentialLength {
		return serrors.With(serrors.ErrBadRequest, "API secret is too short")
	}
	if channel.Username == "" {
		return serrors.With(serrors.ErrBadRequest, "username is required")
	}
	if channel.Password == "" {
		return serrors.With(serrors.ErrBadRequest, "password is required")
	}

	return nil
}
