package storage

import "context"

// prefixed scopes every key of the underlying store under a fixed namespace.
type prefixed struct {
	prefix string
	store  Store
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.store.Get(ctx, p.prefix+key)
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.store.Put(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.store.Delete(ctx, p.prefix+key)
}

// Prefixed returns a view of store whose keys live under prefix.
func Prefixed(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	if inner, ok := store.(*prefixed); ok {
		return &prefixed{prefix: inner.prefix + prefix, store: inner.store}
	}
	return &prefixed{prefix: prefix, store: store}
}
