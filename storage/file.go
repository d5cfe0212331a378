package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

const objectExt = ".json"

// FileStore persists each key as a separate object under baseURL.
// Any afs URL works: file://, mem://, gs://, s3:// ...
type FileStore struct {
	mu      sync.Mutex
	baseURL string
	fs      afs.Service
}

// NewFileStore creates a Store that persists values under baseURL.
func NewFileStore(baseURL string) *FileStore {
	return &FileStore{baseURL: baseURL, fs: afs.New()}
}

func (f *FileStore) objectURL(key string) string {
	return url.Join(f.baseURL, objectName(key)+objectExt)
}

// objectName keeps plain keys readable and encodes the rest.
func objectName(key string) string {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return "~" + base64.RawURLEncoding.EncodeToString([]byte(key))
		}
	}
	return key
}

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	URL := f.objectURL(key)
	f.mu.Lock()
	defer f.mu.Unlock()
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := f.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileStore) Put(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fs.Upload(ctx, f.objectURL(key), 0o600, bytes.NewReader(value))
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	URL := f.objectURL(key)
	f.mu.Lock()
	defer f.mu.Unlock()
	ok, err := f.fs.Exists(ctx, URL)
	if err != nil || !ok {
		return err
	}
	return f.fs.Delete(ctx, URL)
}
