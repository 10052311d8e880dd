package registry

import (
	"context"

	"dmbot/pkg/domain"
)

//go:generate mockgen -package mockregistry -source=interface.go -destination=mock/mockregistry.go *
type Registry interface {
	Add(ctx context.Context, userID domain.UserID, channel NewChannel) (*domain.Channel, error)
	List(ctx context.Context, userID domain.UserID) ([]domain.Channel, error)
	Get(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error)
	Remove(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error)
	Count(ctx context.Context, userID domain.UserID) (int64, error)
	SaveAccessToken(ctx context.Context, userID domain.UserID, id domain.ChannelID, token string) (*domain.Channel, error)
}
