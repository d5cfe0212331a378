// Package export builds flashcard deck packages with their media and writes them
// to an afs destination.
package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/hostbridge/schema"
)

const TextCodeFailed = "EXPORT_FAILED"

// Exporter exports decks.
type Exporter struct {
	config   Config
	fs       afs.Service
	resolver *resolver
	packager Packager
	logger   glog.Logger
}

// Export packages the deck with its media and uploads the artifact.
func (e *Exporter) Export(ctx context.Context, request *schema.ExportPackageRequest) (*schema.ExportPackageResult, error) {
	fileName := e.fileName(request.FileName)
	files := append(append([]schema.MediaFile{}, request.Deck.Files...), request.Files...)
	media := make([]*Media, 0, len(files))
	for _, file := range files {
		item, err := e.resolver.resolve(ctx, file.Name, file.URL)
		if err != nil {
			return nil, e.failed(err, "failed to resolve media")
		}
		media = append(media, item)
	}
	deck := request.Deck
	deck.Files = nil
	data, err := e.packager.Package(ctx, &deck, media)
	if err != nil {
		return nil, e.failed(err, "failed to build package")
	}
	URL := url.Join(e.config.OutputURL, fileName)
	if err = e.fs.Upload(ctx, URL, 0o644, bytes.NewReader(data)); err != nil {
		return nil, e.failed(err, "failed to write package")
	}
	e.logger.Info("package exported", "url", URL, "media", len(media), "size", len(data))
	return &schema.ExportPackageResult{URL: URL, Size: len(data)}, nil
}

// fileName keeps only the base name so packages stay under OutputURL.
func (e *Exporter) fileName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	name = path.Base(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return e.config.FileName
	}
	return name
}

func (e *Exporter) failed(err error, message string) error {
	e.logger.Error("package export failed", "error", err)
	return goerrors.Wrap(err, goerrors.CategoryOperation, fmt.Sprintf("%v: %v", message, err)).WithTextCode(TextCodeFailed)
}

// Option customises an Exporter.
type Option func(e *Exporter)

// WithPackager replaces the default ZipPackager.
func WithPackager(packager Packager) Option {
	return func(e *Exporter) {
		e.packager = packager
	}
}

// WithFS sets the afs service used for media and uploads.
func WithFS(fs afs.Service) Option {
	return func(e *Exporter) {
		e.fs = fs
	}
}

// WithLogger sets the logger.
func WithLogger(logger glog.Logger) Option {
	return func(e *Exporter) {
		e.logger = glog.Ensure(logger)
	}
}

// New creates an exporter.
func New(config Config, options ...Option) *Exporter {
	config.Init()
	ret := &Exporter{config: config, fs: afs.New(), packager: ZipPackager{}, logger: glog.Nop()}
	for _, opt := range options {
		opt(ret)
	}
	ret.resolver = newResolver(ret.fs, config.MediaBaseURLs)
	return ret
}
