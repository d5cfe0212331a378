package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hostbridge/storage"
)

func TestCache(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	aCache := New(store)

	credential, err := aCache.Lookup(ctx)
	require.NoError(t, err)
	assert.Nil(t, credential)

	require.NoError(t, aCache.Set(ctx, &Credential{AccessToken: "t1", AccountHint: "user@example.com"}))
	credential, err = aCache.Lookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Credential{AccessToken: "t1", AccountHint: "user@example.com"}, credential)

	require.NoError(t, aCache.Set(ctx, &Credential{AccessToken: "t2"}))
	credential, err = aCache.Lookup(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Credential{AccessToken: "t2", AccountHint: "user@example.com"}, credential)

	assert.Equal(t, map[string][]byte{
		DefaultNamespace + "token":   []byte("t2"),
		DefaultNamespace + "account": []byte("user@example.com"),
	}, store.(storage.Snapshotter).Snapshot())

	require.NoError(t, aCache.Clear(ctx))
	credential, err = aCache.Lookup(ctx)
	require.NoError(t, err)
	assert.Nil(t, credential)
	assert.Empty(t, store.(storage.Snapshotter).Snapshot())
}

func TestCache_Namespace(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, New(store, WithNamespace("other_")).Set(ctx, &Credential{AccessToken: "x"}))
	assert.Equal(t, map[string][]byte{"other_token": []byte("x")}, store.(storage.Snapshotter).Snapshot())

	credential, err := New(store).Lookup(ctx)
	require.NoError(t, err)
	assert.Nil(t, credential)
}

func TestCache_SetRequiresToken(t *testing.T) {
	err := New(storage.NewMemoryStore()).Set(context.Background(), &Credential{AccountHint: "a"})
	assert.Error(t, err)
}

type failingStore struct{ storage.Store }

func (f *failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk unavailable")
}

func TestCache_LookupError(t *testing.T) {
	_, err := New(&failingStore{Store: storage.NewMemoryStore()}).Lookup(context.Background())
	assert.ErrorContains(t, err, "failed to read cached token")
}
