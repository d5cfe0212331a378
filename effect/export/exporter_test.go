package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/hostbridge/schema"
)

func readZip(t *testing.T, data []byte) map[string][]byte {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	ret := map[string][]byte{}
	for _, file := range reader.File {
		rc, err := file.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		ret[file.Name] = content
	}
	return ret
}

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "cat.png")
	require.NoError(t, os.WriteFile(mediaPath, []byte("png-bytes"), 0o644))

	outputDir := filepath.Join(dir, "out")
	exporter := New(Config{OutputURL: "file://" + filepath.ToSlash(outputDir), MediaBaseURLs: []string{"file://" + filepath.ToSlash(dir)}})

	payload := `{
		"deck": {
			"id": 1700000000,
			"name": "Dutch",
			"models": {"1": {"name": "Basic", "fields": [{"name": "Front"}, {"name": "Back"}],
				"templates": [{"name": null, "frontHtml": "{{Front}}", "backHtml": "{{Back}}"}], "styling": ""}},
			"notes": {"1": [["hond", "dog"], ["kat", "cat"]]},
			"files": [["hond.mp3", "data:audio/mpeg;base64,` + base64.StdEncoding.EncodeToString([]byte("mp3-bytes")) + `"]]
		},
		"fileName": "../dutch.apkg",
		"files": [["cat.png", "file://` + filepath.ToSlash(mediaPath) + `"]]
	}`
	request := &schema.ExportPackageRequest{}
	require.NoError(t, json.Unmarshal([]byte(payload), request))

	result, err := exporter.Export(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, "dutch.apkg", filepath.Base(result.URL))

	data, err := os.ReadFile(filepath.Join(outputDir, "dutch.apkg"))
	require.NoError(t, err)
	assert.Equal(t, len(data), result.Size)

	entries := readZip(t, data)
	assert.Equal(t, []byte("mp3-bytes"), entries["0"])
	assert.Equal(t, []byte("png-bytes"), entries["1"])
	assert.JSONEq(t, `{"0":"hond.mp3","1":"cat.png"}`, string(entries[MediaEntry]))

	deck := &schema.Deck{}
	require.NoError(t, json.Unmarshal(entries[DeckEntry], deck))
	assert.Equal(t, "Dutch", deck.Name)
	assert.Equal(t, [][]string{{"hond", "dog"}, {"kat", "cat"}}, deck.Notes["1"])
	assert.Nil(t, deck.Models["1"].Templates[0].Name)
	assert.Empty(t, deck.Files)
}

func TestExporter_Failures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	var testCases = []struct {
		description string
		options     []Option
		request     *schema.ExportPackageRequest
	}{
		{
			description: "missing media",
			request: &schema.ExportPackageRequest{Files: []schema.MediaFile{
				{Name: "x.png", URL: "file://" + filepath.ToSlash(filepath.Join(dir, "missing.png"))},
			}},
		},
		{
			description: "host file outside media locations",
			request: &schema.ExportPackageRequest{Files: []schema.MediaFile{
				{Name: "passwd", URL: "file:///etc/passwd"},
			}},
		},
		{
			description: "dot segments escaping media location",
			request: &schema.ExportPackageRequest{Files: []schema.MediaFile{
				{Name: "x.png", URL: "file://" + filepath.ToSlash(dir) + "/../../etc/passwd"},
			}},
		},
		{
			description: "malformed data url",
			request:     &schema.ExportPackageRequest{Files: []schema.MediaFile{{Name: "x", URL: "data:nocomma"}}},
		},
		{
			description: "packager failure",
			options: []Option{WithPackager(PackagerFunc(func(ctx context.Context, deck *schema.Deck, media []*Media) ([]byte, error) {
				return nil, errors.New("disk full")
			}))},
			request: &schema.ExportPackageRequest{},
		},
	}
	for _, testCase := range testCases {
		exporter := New(Config{OutputURL: "file://" + filepath.ToSlash(dir), MediaBaseURLs: []string{"file://" + filepath.ToSlash(dir)}}, testCase.options...)
		_, err := exporter.Export(ctx, testCase.request)
		require.Error(t, err, testCase.description)
		var domainErr *goerrors.Error
		require.True(t, goerrors.As(err, &domainErr), testCase.description)
		assert.Equal(t, TextCodeFailed, domainErr.TextCode, testCase.description)
	}
}

func TestResolver_Permitted(t *testing.T) {
	aResolver := newResolver(nil, []string{"mem://localhost/media/", "file:///srv/decks"})
	var testCases = []struct {
		URL    string
		expect bool
	}{
		{URL: "https://cdn.example.com/a.png", expect: true},
		{URL: "HTTP://cdn.example.com/a.png", expect: true},
		{URL: "mem://localhost/media/a.png", expect: true},
		{URL: "file:///srv/decks/dutch/hond.mp3", expect: true},
		{URL: "file:///srv/decks-private/a.png", expect: false},
		{URL: "file:///srv/decks/../../etc/passwd", expect: false},
		{URL: "file:///etc/passwd", expect: false},
		{URL: "gs://bucket/a.png", expect: false},
		{URL: "/etc/passwd", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, aResolver.permitted(testCase.URL), testCase.URL)
	}
}

func TestDecodeDataURL(t *testing.T) {
	var testCases = []struct {
		description string
		URL         string
		expect      string
		expectErr   bool
	}{
		{description: "base64", URL: "data:text/plain;base64,aGVsbG8=", expect: "hello"},
		{description: "unpadded base64", URL: "data:;base64,aGVsbG8", expect: "hello"},
		{description: "percent encoded", URL: "data:text/plain,hello%20world", expect: "hello world"},
		{description: "no comma", URL: "data:text/plain", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := decodeDataURL(testCase.URL)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestExporter_DefaultFileName(t *testing.T) {
	exporter := New(Config{})
	assert.Equal(t, DefaultFileName, exporter.fileName(""))
	assert.Equal(t, DefaultFileName, exporter.fileName("  "))
	assert.Equal(t, "a.apkg", exporter.fileName(`c:\tmp\a.apkg`))
}
