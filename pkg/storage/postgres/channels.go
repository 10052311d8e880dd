package postgres

import (
	"context"
	"errors"
	"fmt"

	"dmbot/pkg/domain"
	"dmbot/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	channelsTable = "channels"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. The channels table enforces UNIQUE(user_id, channel_name).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// StoreChannel inserts a channel and returns the stored row including the
// generated ID and created_at. A duplicate (user_id, channel_name) pair is
// reported as serrors.ErrConflict.
func (p *PgSQL) StoreChannel(ctx context.Context, channel domain.Channel) (*domain.Channel, error) {
	var pgChannel PgChannel
	pgChannel.FromDomain(channel)

	var row PgChannel
	found, err := p.Builder.Insert(channelsTable).
		Rows(pgChannel).
		Returning(&PgChannel{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, serrors.Wrap(serrors.ErrConflict, err,
				"channel %q already exists for user %d", channel.Name, channel.UserID)
		}

		return nil, fmt.Errorf("could not store channel into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("insert into %s returned no row", channelsTable)
	}

	return row.ToDomain(), nil
}

// UserChannels returns all channels registered by the given user ordered by
// created_at DESC.
func (p *PgSQL) UserChannels(ctx context.Context, userID domain.UserID) ([]domain.Channel, error) {
	var rows []PgChannel
	if err := p.Builder.From(channelsTable).
		Where(goqu.I("user_id").Eq(int64(userID))).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch user channels from pg: %w", err)
	}

	return pgChannelsToDomain(rows), nil
}

// ChannelCountByUser returns how many channels the user has registered.
func (p *PgSQL) ChannelCountByUser(ctx context.Context, userID domain.UserID) (int64, error) {
	count, err := p.Builder.From(channelsTable).
		Where(goqu.I("user_id").Eq(int64(userID))).
		CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not count user channels in pg: %w", err)
	}

	return count, nil
}

// ChannelByID returns a channel by its ID for the given user, or nil when not
// found.
func (p *PgSQL) ChannelByID(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error) {
	var row PgChannel
	found, err := p.Builder.From(channelsTable).
		Where(
			goqu.I("id").Eq(int64(id)),
			goqu.I("user_id").Eq(int64(userID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch channel by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeleteChannel removes a channel and its stored credentials, returning the
// deleted record or nil when no matching row exists. There is no soft delete
// for stored credentials.
func (p *PgSQL) DeleteChannel(ctx context.Context, userID domain.UserID, id domain.ChannelID) (*domain.Channel, error) {
	var row PgChannel
	found, err := p.Builder.Delete(channelsTable).
		Where(
			goqu.I("id").Eq(int64(id)),
			goqu.I("user_id").Eq(int64(userID)),
		).Returning(&PgChannel{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete channel in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UpdateChannelAccessToken stores a fresh OAuth access token for the channel
// and returns the updated row, or nil when the channel does not exist. An
// empty token clears the stored value (set to NULL).
func (p *PgSQL) UpdateChannelAccessToken(ctx context.Context,
	id domain.ChannelID,
	token string) (*domain.Channel, error) {
	rec := goqu.Record{}
	if token == "" {
		rec["access_token"] = goqu.L("NULL")
	} else {
		rec["access_token"] = token
	}

	var row PgChannel
	found, err := p.Builder.Update(channelsTable).
		Set(rec).
		Where(goqu.I("id").Eq(int64(id))).
		Returning(&PgChannel{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update channel access token in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
