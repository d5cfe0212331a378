package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

type (
	// GetTokenRequest asks for an access token.
	GetTokenRequest struct {
		ForceRefresh bool `json:"forceRefresh,omitempty"`
	}

	// TimeoutRequest echoes ID back after the given delay.
	TimeoutRequest struct {
		ID         json.RawMessage `json:"id"`
		DurationMs int             `json:"durationMs,omitempty"`
		// Timeout is accepted as an alias of DurationMs.
		Timeout int `json:"timeout,omitempty"`
	}

	StorageSetRequest struct {
		Key   string          `json:"key"`
		Value json.RawMessage `json:"value"`
	}

	StorageKeyRequest struct {
		Key string `json:"key"`
	}

	SynthesizeSpeechRequest struct {
		CredentialKey string `json:"credentialKey"`
		Region        string `json:"region"`
		Text          string `json:"text"`
	}

	ExportPackageRequest struct {
		Deck     Deck        `json:"deck"`
		FileName string      `json:"fileName,omitempty"`
		Files    []MediaFile `json:"files,omitempty"`
	}

	ExportPackageResult struct {
		URL  string `json:"url"`
		Size int    `json:"size"`
	}

	// Deck is a flashcard deck with its note models and notes keyed by model id.
	Deck struct {
		ID     int64                 `json:"id"`
		Name   string                `json:"name"`
		Models map[string]*Model     `json:"models"`
		Notes  map[string][][]string `json:"notes,omitempty"`
		// Files lists media referenced by notes.
		Files []MediaFile `json:"files,omitempty"`
	}

	Model struct {
		Name      string      `json:"name"`
		Fields    []*Field    `json:"fields"`
		Templates []*Template `json:"templates"`
		Styling   string      `json:"styling,omitempty"`
	}

	Field struct {
		Name string `json:"name"`
	}

	Template struct {
		Name      *string `json:"name"`
		FrontHTML string  `json:"frontHtml"`
		BackHTML  string  `json:"backHtml"`
	}

	// MediaFile names a media URL; on the wire it is a [name, url] pair.
	MediaFile struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}

	CapabilityInfo struct {
		Name        string       `json:"name"`
		InputSchema *InputSchema `json:"inputSchema,omitempty"`
	}

	ListCapabilitiesResult struct {
		Capabilities []*CapabilityInfo `json:"capabilities"`
	}
)

// Duration returns the requested delay.
func (r *TimeoutRequest) Duration() time.Duration {
	ms := r.DurationMs
	if ms == 0 {
		ms = r.Timeout
	}
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (m MediaFile) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.Name, m.URL})
}

// UnmarshalJSON accepts [name, url] or {"name":..., "url":...}.
func (m *MediaFile) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("invalid media file: expected [name, url], got %d elements", len(pair))
		}
		m.Name, m.URL = pair[0], pair[1]
		return nil
	}
	type plain MediaFile
	return json.Unmarshal(data, (*plain)(m))
}

// UnmarshalJSON accepts a bare boolean or {"forceRefresh": bool}.
func (r *GetTokenRequest) UnmarshalJSON(data []byte) error {
	var forceRefresh bool
	if err := json.Unmarshal(data, &forceRefresh); err == nil {
		r.ForceRefresh = forceRefresh
		return nil
	}
	type plain GetTokenRequest
	return json.Unmarshal(data, (*plain)(r))
}

// UnmarshalJSON accepts a bare key string or {"key": string}.
func (r *StorageKeyRequest) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err == nil {
		r.Key = key
		return nil
	}
	type plain StorageKeyRequest
	return json.Unmarshal(data, (*plain)(r))
}
