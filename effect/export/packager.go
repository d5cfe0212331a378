package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/viant/hostbridge/schema"
)

// Packager builds the package artifact for a deck and its media.
type Packager interface {
	Package(ctx context.Context, deck *schema.Deck, media []*Media) ([]byte, error)
}

// PackagerFunc adapts a function to Packager.
type PackagerFunc func(ctx context.Context, deck *schema.Deck, media []*Media) ([]byte, error)

func (f PackagerFunc) Package(ctx context.Context, deck *schema.Deck, media []*Media) ([]byte, error) {
	return f(ctx, deck, media)
}

const (
	DeckEntry  = "deck.json"
	MediaEntry = "media"
)

// ZipPackager writes a zip archive holding the deck as DeckEntry, a MediaEntry
// manifest mapping entry numbers to media names, and one numbered entry per
// media file.
type ZipPackager struct{}

func (ZipPackager) Package(ctx context.Context, deck *schema.Deck, media []*Media) ([]byte, error) {
	buffer := &bytes.Buffer{}
	writer := zip.NewWriter(buffer)
	deckData, err := json.Marshal(deck)
	if err != nil {
		return nil, err
	}
	if err = writeEntry(writer, DeckEntry, deckData); err != nil {
		return nil, err
	}
	manifest := make(map[string]string, len(media))
	for i, item := range media {
		entry := strconv.Itoa(i)
		manifest[entry] = item.Name
		if err = writeEntry(writer, entry, item.Data); err != nil {
			return nil, err
		}
	}
	manifestData, err := json.Marshal(manifest)
	if err != nil {
		return nil, err
	}
	if err = writeEntry(writer, MediaEntry, manifestData); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeEntry(writer *zip.Writer, name string, data []byte) error {
	entry, err := writer.Create(name)
	if err != nil {
		return err
	}
	_, err = entry.Write(data)
	return err
}
