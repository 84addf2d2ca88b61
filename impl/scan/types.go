package scan

import (
	"github.com/Exotik850/ollama-file-find/impl/blobs"
	"github.com/Exotik850/ollama-file-find/impl/manifest"
	"github.com/Exotik850/ollama-file-find/impl/modelref"
)

// Opts controls one scan of the manifests tree.
type Opts struct {
	// Root of the manifests tree (models/manifests)
	Root string
	// Root of the blobs directory (models/blobs)
	BlobsRoot string
	// Include entries with a path component starting with '.'
	IncludeHidden bool
	// Include layer detail, total size and manifest mtime
	Verbose bool
	// Resolve digests to blob paths and verify them
	BlobPaths bool
}

// ListedModel is one scanned model. Name is the normalized display name and is
// always present along with the reference components and the manifest path.
// The remaining fields are populated only when the scan requested verbose
// detail and/or blob path resolution.
type ListedModel struct {
	Name string `json:"name"`
	modelref.ModelRef
	ManifestPath    string           `json:"manifest_path"`
	Layers          []manifest.Layer `json:"layers,omitempty"`
	Config          *manifest.Layer  `json:"config,omitempty"`
	TotalSize       *int64           `json:"total_size,omitempty"`
	MTime           *int64           `json:"mtime,omitempty"`
	PrimaryBlobPath string           `json:"primary_blob_path,omitempty"`
	BlobPaths       []blobs.Info     `json:"blob_paths,omitempty"`
}
