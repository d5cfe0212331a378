package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/viant/afs"
)

// Media is a resolved media file.
type Media struct {
	Name string
	Data []byte
}

// resolver loads media referenced by URL. Besides data: URLs only http(s)
// and locations under baseURLs are read.
type resolver struct {
	fs       afs.Service
	baseURLs []string
}

func newResolver(fs afs.Service, baseURLs []string) *resolver {
	ret := &resolver{fs: fs}
	for _, baseURL := range baseURLs {
		if normalized, ok := normalizeURL(baseURL); ok {
			ret.baseURLs = append(ret.baseURLs, strings.TrimSuffix(normalized, "/")+"/")
		}
	}
	return ret
}

func (r *resolver) permitted(URL string) bool {
	normalized, ok := normalizeURL(URL)
	if !ok {
		return false
	}
	if scheme, _, _ := strings.Cut(normalized, ":"); scheme == "http" || scheme == "https" {
		return true
	}
	for _, baseURL := range r.baseURLs {
		if strings.HasPrefix(normalized, baseURL) {
			return true
		}
	}
	return false
}

// normalizeURL lower-cases the scheme and resolves dot segments.
func normalizeURL(URL string) (string, bool) {
	parsed, err := url.Parse(URL)
	if err != nil || parsed.Scheme == "" {
		return "", false
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	if parsed.Path != "" {
		parsed.Path = path.Clean("/" + parsed.Path)
		parsed.RawPath = ""
	}
	return parsed.String(), true
}

func (r *resolver) resolve(ctx context.Context, name, URL string) (*Media, error) {
	if strings.HasPrefix(URL, "data:") {
		data, err := decodeDataURL(URL)
		if err != nil {
			return nil, fmt.Errorf("media %v: %w", name, err)
		}
		return &Media{Name: name, Data: data}, nil
	}
	if !r.permitted(URL) {
		return nil, fmt.Errorf("media %v: URL %v is not an allowed media location", name, URL)
	}
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("media %v: failed to download %v: %w", name, URL, err)
	}
	return &Media{Name: name, Data: data}, nil
}

// decodeDataURL decodes data:[<mediatype>][;base64],<data>.
func decodeDataURL(dataURL string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
				return nil, fmt.Errorf("invalid base64 data URL: %w", err)
			}
		}
		return data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid data URL: %w", err)
	}
	return []byte(text), nil
}
