package registry_test

import (
	"context"
	"errors"
	"testing"

	"dmbot/internal/registry"
	"dmbot/pkg/domain"
	"dmbot/pkg/serrors"
	"dmbot/pkg/storage"

	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory storage.Storage implementation. Transactions are
// simulated by running the callback against the same state.
type fakeStorage struct {
	channels []domain.Channel
	nextID   domain.ChannelID

	storeErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{nextID: 1}
}

func (f *fakeStorage) StoreChannel(_ context.Context, channel domain.Channel) (*domain.Channel, error) {
	if f.storeErr != nil {
		return nil, f.storeErr
	}

	for _, existing := range f.channels {
		if existing.UserID == channel.UserID && existing.Name == channel.Name {
			return nil, serrors.With(serrors.ErrConflict, "channel already registered")
		}
	}

	channel.ID = f.nextID
	f.nextID++
	f.channels = append(f.channels, channel)

	return &channel, nil
}

func (f *fakeStorage) UserChannels(_ context.Context, userID domain.UserID) ([]domain.Channel, error) {
	var out []domain.Channel
	for i := len(f.channels) - 1; i >= 0; i-- {
		if f.channels[i].UserID == userID {
			out = append(out, f.channels[i])
		}
	}

	return out, nil
}

func (f *fakeStorage) ChannelCountByUser(ctx context.Context, userID domain.UserID) (int64, error) {
	channels, _ := f.UserChannels(ctx, userID)

	return int64(len(channels)), nil
}

func (f *fakeStorage) ChannelByID(_ context.Context,
	userID domain.UserID,
	id domain.ChannelID) (*domain.Channel, error) {
	for _, channel := range f.channels {
		if channel.ID == id && channel.UserID == userID {
			c := channel

			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) DeleteChannel(_ context.Context,
	userID domain.UserID,
	id domain.ChannelID) (*domain.Channel, error) {
	for i, channel := range f.channels {
		if channel.ID == id && channel.UserID == userID {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)

			return &channel, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) UpdateChannelAccessToken(_ context.Context,
	id domain.ChannelID,
	token string) (*domain.Channel, error) {
	for i := range f.channels {
		if f.channels[i].ID == id {
			f.channels[i].AccessToken = token
			c := f.channels[i]

			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeStorage) Ping(context.Context) error { return nil }
func (f *fakeStorage) Close() error               { return nil }

func (f *fakeStorage) Begin(context.Context) (storage.TxStorage, error) {
	return nil, errors.New("not supported in fake storage")
}

func (f *fakeStorage) WithTx(ctx context.Context, cb func(storage.AllStorage) error) error {
	return cb(f)
}

func validChannel(name string) registry.NewChannel {
	return registry.NewChannel{
		Name:      name,
		APIKey:    "0123456789abcdef",
		APISecret: "fedcba9876543210",
		Username:  "uploader",
		Password:  "hunter22!",
	}
}

func TestRegistry_Add(t *testing.T) {
	strg := newFakeStorage()
	reg := registry.New(strg)
	ctx := context.Background()

	stored, err := reg.Add(ctx, 42, validChannel("main"))
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotZero(t, stored.ID)
	require.Equal(t, domain.UserID(42), stored.UserID)
	require.Equal(t, "main", stored.Name)

	t.Run("duplicate name conflicts", func(t *testing.T) {
		_, err := reg.Add(ctx, 42, validChannel("main"))
		require.ErrorIs(t, err, serrors.ErrConflict)
	})

	t.Run("same name for another user is fine", func(t *testing.T) {
		_, err := reg.Add(ctx, 43, validChannel("main"))
		require.NoError(t, err)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		stored, err := reg.Add(ctx, 42, validChannel("  padded  "))
		require.NoError(t, err)
		require.Equal(t, "padded", stored.Name)
	})
}

func TestRegistry_Add_Validation(t *testing.T) {
	reg := registry.New(newFakeStorage())
	ctx := context.Background()

	longName := make([]byte, 51)
	for i := range longName {
		longName[i] = 'a'
	}

	mutate := func(fn func(c *registry.NewChannel)) registry.NewChannel {
		c := validChannel("main")
		fn(&c)

		return c
	}

	tests := []struct {
		name    string
		channel registry.NewChannel
	}{
		{"empty name", mutate(func(c *registry.NewChannel) { c.Name = "" })},
		{"blank name", mutate(func(c *registry.NewChannel) { c.Name = "   " })},
		{"name too long", mutate(func(c *registry.NewChannel) { c.Name = string(longName) })},
		{"short api key", mutate(func(c *registry.NewChannel) { c.APIKey = "short" })},
		{"short api secret", mutate(func(c *registry.NewChannel) { c.APISecret = "short" })},
		{"missing username", mutate(func(c *registry.NewChannel) { c.Username = "" })},
		{"missing password", mutate(func(c *registry.NewChannel) { c.Password = "" })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Add(ctx, 42, tt.channel)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestRegistry_ListAndCount(t *testing.T) {
	strg := newFakeStorage()
	reg := registry.New(strg)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		_, err := reg.Add(ctx, 42, validChannel(name))
		require.NoError(t, err)
	}
	_, err := reg.Add(ctx, 99, validChannel("other"))
	require.NoError(t, err)

	channels, err := reg.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, channels, 3)
	// newest first
	require.Equal(t, "third", channels[0].Name)

	count, err := reg.Count(ctx, 42)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	count, err = reg.Count(ctx, 7)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestRegistry_Get(t *testing.T) {
	strg := newFakeStorage()
	reg := registry.New(strg)
	ctx := context.Background()

	stored, err := reg.Add(ctx, 42, validChannel("main"))
	require.NoError(t, err)

	got, err := reg.Get(ctx, 42, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, got.ID)

	t.Run("wrong user", func(t *testing.T) {
		_, err := reg.Get(ctx, 43, stored.ID)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})

	t.Run("missing channel", func(t *testing.T) {
		_, err := reg.Get(ctx, 42, stored.ID+1000)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestRegistry_Remove(t *testing.T) {
	strg := newFakeStorage()
	reg := registry.New(strg)
	ctx := context.Background()

	stored, err := reg.Add(ctx, 42, validChannel("main"))
	require.NoError(t, err)

	removed, err := reg.Remove(ctx, 42, stored.ID)
	require.NoError(t, err)
	require.Equal(t, stored.ID, removed.ID)

	_, err = reg.Get(ctx, 42, stored.ID)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	t.Run("already removed", func(t *testing.T) {
		_, err := reg.Remove(ctx, 42, stored.ID)
		require.ErrorIs(t, err, serrors.ErrNotFound)
	})
}

func TestRegistry_SaveAccessToken(t *testing.T) {
	strg := newFakeStorage()
	reg := registry.New(strg)
	ctx := context.Background()

	stored, err := reg.Add(ctx, 42, validChannel("main"))
	require.NoError(t, err)

	updated, err := reg.SaveAccessToken(ctx, 42, stored.ID, "tok-123")
	require.NoError(t, err)
	require.Equal(t, "tok-123", updated.AccessToken)

	t.Run("wrong user cannot update", func(t *testing.T) {
		_, err := reg.SaveAccessToken(ctx, 43, stored.ID, "tok-456")
		require.ErrorIs(t, err, serrors.ErrNotFound)

		got, err := reg.Get(ctx, 42, stored.ID)
		require.NoError(t, err)
		require.Equal(t, "tok-123", got.AccessToken)
	})
}

func TestRegistry_Add_StorageError(t *testing.T) {
	strg := newFakeStorage()
	strg.storeErr = errors.New("connection reset")
	reg := registry.New(strg)

	_, err := reg.Add(context.Background(), 42, validChannel("main"))
	require.Error(t, err)
	require.NotErrorIs(t, err, serrors.ErrBadRequest)
}
