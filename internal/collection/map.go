package collection

import (
	"cmp"
	"slices"
	"sync"
)

// SyncMap is a map guarded by a read/write mutex.
type SyncMap[K cmp.Ordered, V any] struct {
	m   map[K]V
	mux sync.RWMutex
}

func (m *SyncMap[K, V]) Get(k K) (V, bool) {
	m.mux.RLock()
	defer m.mux.RUnlock()
	v, ok := m.m[k]
	return v, ok
}

// Put stores v under k, replacing any previous value; it reports whether k was already present.
func (m *SyncMap[K, V]) Put(k K, v V) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	_, replaced := m.m[k]
	m.m[k] = v
	return replaced
}

func (m *SyncMap[K, V]) Delete(k K) {
	m.mux.Lock()
	defer m.mux.Unlock()
	delete(m.m, k)
}

func (m *SyncMap[K, V]) Len() int {
	m.mux.RLock()
	defer m.mux.RUnlock()
	return len(m.m)
}

// Keys returns keys in ascending order.
func (m *SyncMap[K, V]) Keys() []K {
	m.mux.RLock()
	keys := make([]K, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	m.mux.RUnlock()
	slices.Sort(keys)
	return keys
}

// Range iterates over a snapshot, so f may modify the map.
func (m *SyncMap[K, V]) Range(f func(key K, value V) bool) {
	for _, k := range m.Keys() {
		v, ok := m.Get(k)
		if !ok {
			continue
		}
		if !f(k, v) {
			return
		}
	}
}

func NewSyncMap[K cmp.Ordered, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{m: make(map[K]V)}
}
