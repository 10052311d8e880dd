package postgres

import (
	"database/sql"
	"time"

	"dmbot/pkg/domain"
)

// PgChannel mirrors a row of the channels table.
type PgChannel struct {
	ID     int64 `db:"id"      goqu:"skipinsert"`
	UserID int64 `db:"user_id"`

	Name      string `db:"channel_name"`
	APIKey    string `db:"api_key"`
	APISecret string `db:"api_secret"`
	Username  string `db:"username"`
	Password  string `db:"password"`

	AccessToken sql.NullString `db:"access_token"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgChannel) ToDomain() *domain.Channel {
	return &domain.Channel{
		ID:          domain.ChannelID(p.ID),
		UserID:      domain.UserID(p.UserID),
		Name:        p.Name,
		APIKey:      p.APIKey,
		APISecret:   p.APISecret,
		Username:    p.Username,
		Password:    p.Password,
		AccessToken: p.AccessToken.String,
		CreatedAt:   p.CreatedAt,
	}
}

func (p *PgChannel) FromDomain(channel domain.Channel) {
	*p = PgChannel{
		ID:        int64(channel.ID),
		UserID:    int64(channel.UserID),
		Name:      channel.Name,
		APIKey:    channel.APIKey,
		APISecret: channel.APISecret,
		Username:  channel.Username,
		Password:  channel.Password,
		AccessToken: sql.NullString{
			String: channel.AccessToken,
			Valid:  channel.AccessToken != "",
		},
		CreatedAt: channel.CreatedAt,
	}
}

func pgChannelsToDomain(channels []PgChannel) []domain.Channel {
	out := make([]domain.Channel, 0, len(channels))
	for i := range channels {
		out = append(out, *channels[i].ToDomain())
	}

	return out
}
