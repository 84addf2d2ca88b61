// Package blobs resolves manifest digests against the flat blob store. A blob
// is stored with its digest as the file name, colon replaced by dash, e.g.
// digest 'sha256:abc...' is the file '<blobs>/sha256-abc...'.
package blobs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Exotik850/ollama-file-find/impl/manifest"

	"github.com/opencontainers/go-digest"
)

// Info describes the resolution of one manifest digest against the blob store.
// Exists and SizeOk are recorded facts for the caller's judgment - a missing
// or wrongly sized blob is not an error. SizeOk is true when the blob exists
// and either no size was declared or the declared size matches the file.
type Info struct {
	Digest       string `json:"digest"`
	MediaType    string `json:"media_type"`
	DeclaredSize *int64 `json:"declared_size,omitempty"`
	Path         string `json:"path"`
	Exists       bool   `json:"exists"`
	SizeOk       bool   `json:"size_ok"`
	ActualSize   *int64 `json:"actual_size,omitempty"`
	Primary      bool   `json:"primary"`
}

// BlobPath maps a digest string to the path of its blob file under 'blobsRoot'.
// Pure string transform - no filesystem access. A digest that does not parse
// as a well-formed '<algorithm>:<hex>' still maps by replacing each colon
// with a dash.
func BlobPath(blobsRoot string, dgst string) string {
	if parsed, err := digest.Parse(dgst); err == nil {
		return filepath.Join(blobsRoot, fmt.Sprintf("%s-%s", parsed.Algorithm(), parsed.Encoded()))
	}
	return filepath.Join(blobsRoot, strings.ReplaceAll(dgst, ":", "-"))
}

// BuildInfo resolves one layer (or config) descriptor to an Info by stat-ing
// its expected blob file.
func BuildInfo(layer manifest.Layer, blobsRoot string) Info {
	path := BlobPath(blobsRoot, layer.Digest)
	info := Info{
		Digest:       layer.Digest,
		MediaType:    layer.MediaType,
		DeclaredSize: layer.Size,
		Path:         path,
	}
	if fi, err := os.Stat(path); err == nil {
		actual := fi.Size()
		info.Exists = true
		info.ActualSize = &actual
		info.SizeOk = layer.Size == nil || *layer.Size == actual
	}
	return info
}

// PrimaryDigest picks the digest that best represents the model's main
// content: the layer with the largest declared size (first wins on a tie),
// falling back to the config digest when no layer declares a size. Returns
// the empty string when neither yields a candidate.
func PrimaryDigest(layers []manifest.Layer, config *manifest.Layer) string {
	best := -1
	var maxSize int64
	for i, layer := range layers {
		if layer.Size == nil {
			continue
		}
		if best == -1 || *layer.Size > maxSize {
			best = i
			maxSize = *layer.Size
		}
	}
	if best != -1 {
		return layers[best].Digest
	}
	if config != nil {
		return config.Digest
	}
	return ""
}

// BuildInfos resolves every layer plus the config (if present) to an Info,
// marks the entries matching the primary digest, and returns the primary
// digest along with the full list in manifest order (config last).
func BuildInfos(layers []manifest.Layer, config *manifest.Layer, blobsRoot string) (string, []Info) {
	primary := PrimaryDigest(layers, config)
	infos := make([]Info, 0, len(layers)+1)
	for _, layer := range layers {
		infos = append(infos, BuildInfo(layer, blobsRoot))
	}
	if config != nil {
		infos = append(infos, BuildInfo(*config, blobsRoot))
	}
	if primary != "" {
		for i := range infos {
			if infos[i].Digest == primary {
				infos[i].Primary = true
			}
		}
	}
	return primary, infos
}
