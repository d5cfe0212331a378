package export

import (
	"os"
	"path/filepath"
)

const DefaultFileName = "deck.apkg"

// Config describes where exported packages are written.
type Config struct {
	// OutputURL is an afs URL (file://, mem://, gs:// ...).
	OutputURL string `json:"outputURL,omitempty" yaml:"outputURL,omitempty"`
	// FileName is used when the request does not name the package.
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	// MediaBaseURLs are afs locations media may be read from in addition to
	// data: and http(s) URLs.
	MediaBaseURLs []string `json:"mediaBaseURLs,omitempty" yaml:"mediaBaseURLs,omitempty"`
}

// Init sets defaults
func (c *Config) Init() {
	if c.OutputURL == "" {
		c.OutputURL = "file://" + filepath.ToSlash(filepath.Join(os.TempDir(), "hostbridge", "export"))
	}
	if c.FileName == "" {
		c.FileName = DefaultFileName
	}
}
