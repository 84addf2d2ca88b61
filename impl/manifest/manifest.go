// Package manifest reads the JSON manifest files that describe one model each.
// A manifest enumerates the model's content-addressed layers and an optional
// config descriptor of the same shape.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
)

// Layer is one element of the 'layers' list in a Manifest. The same shape
// describes the optional 'config' entry. Size is nil when the manifest does
// not declare a size for the entry.
type Layer struct {
	MediaType string `json:"mediaType"`
	Digest    string `json:"digest"`
	Size      *int64 `json:"size,omitempty"`
}

// Manifest is the parsed JSON body of one manifest file. Fields other than
// 'layers' and 'config' are ignored for forward compatibility.
type Manifest struct {
	Layers []Layer `json:"layers"`
	Config *Layer  `json:"config,omitempty"`
}

// FromFile reads and parses the manifest file at 'path'. The second return
// value is the file's modification time in seconds since the Unix epoch. An
// unreadable file, malformed JSON, or a layer/config entry without a digest
// is an error - the caller is expected to skip the manifest and continue.
func FromFile(path string) (Manifest, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, 0, fmt.Errorf("failed reading manifest %s: %s", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, 0, fmt.Errorf("invalid manifest JSON %s: %s", path, err)
	}
	for i, layer := range m.Layers {
		if layer.Digest == "" {
			return Manifest{}, 0, fmt.Errorf("manifest %s: layer %d has no digest", path, i)
		}
	}
	if m.Config != nil && m.Config.Digest == "" {
		return Manifest{}, 0, fmt.Errorf("manifest %s: config has no digest", path)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return Manifest{}, 0, fmt.Errorf("unable to stat manifest %s: %s", path, err)
	}
	return m, fi.ModTime().Unix(), nil
}

// TotalSize sums the declared sizes of every layer plus config. The second
// return value is false if no entry declared a size, distinguishing "size
// unknown" from a zero total.
func (m *Manifest) TotalSize() (int64, bool) {
	var sum int64
	any := false
	for _, layer := range m.Layers {
		if layer.Size != nil {
			sum += *layer.Size
			any = true
		}
	}
	if m.Config != nil && m.Config.Size != nil {
		sum += *m.Config.Size
		any = true
	}
	return sum, any
}
