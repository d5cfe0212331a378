package pending

import "context"

// Store is a backing registry for typed pendings.
type Store[T any] interface {
	Put(ctx context.Context, p Pending[T]) error
	Get(ctx context.Context, id string) (Pending[T], bool, error)
	// Complete removes and returns the entry; ok is false when it was absent.
	Complete(ctx context.Context, id string) (Pending[T], bool, error)
	Cancel(ctx context.Context, id string) (Pending[T], bool, error)
	List(ctx context.Context) ([]Pending[T], error)
}
