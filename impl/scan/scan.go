// Package scan walks the manifests tree and turns it into a normalized,
// verifiable list of model records. The walk is read-only and synchronous -
// each manifest is processed independently and the results are combined and
// sorted at the end. Unreadable entries, malformed manifests and paths that do
// not parse as model references are logged and skipped; only a manifests root
// that cannot be opened aborts the scan.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Exotik850/ollama-file-find/impl/blobs"
	"github.com/Exotik850/ollama-file-find/impl/manifest"
	"github.com/Exotik850/ollama-file-find/impl/modelref"

	log "github.com/sirupsen/logrus"
)

// Scan walks the manifests tree in 'opts.Root' depth-first and returns one
// ListedModel per parseable manifest, sorted ascending by normalized name.
// Directories and files whose name begins with '.' are pruned - including
// their whole subtree - unless opts.IncludeHidden is set.
func Scan(opts Opts) ([]ListedModel, error) {
	start := time.Now()
	models := []ListedModel{}
	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == opts.Root {
				return fmt.Errorf("unable to open manifests root %s: %s", opts.Root, err)
			}
			log.Warnf("skipping unreadable entry %s: %s", path, err)
			return nil
		}
		hidden := !opts.IncludeHidden && strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden && path != opts.Root {
				return fs.SkipDir
			}
			return nil
		}
		if hidden || !d.Type().IsRegular() {
			return nil
		}
		if model, ok := processEntry(path, opts); ok {
			models = append(models, model)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(models, func(i, j int) bool {
		return models[i].Name < models[j].Name
	})
	log.Debugf("scanned %d model(s) under %s in %s", len(models), opts.Root, time.Since(start))
	return models, nil
}

// processEntry turns one manifest leaf file into a ListedModel. A path that is
// not 3 or 4 components deep, or a manifest that does not parse, is logged and
// dropped without affecting the rest of the scan.
func processEntry(path string, opts Opts) (ListedModel, bool) {
	rel, err := filepath.Rel(opts.Root, path)
	if err != nil {
		log.Warnf("skipping entry outside the manifests root %s: %s", path, err)
		return ListedModel{}, false
	}
	mr, err := modelref.ParseComponents(strings.Split(rel, string(filepath.Separator)))
	if err != nil {
		log.Warnf("skipping manifest %s: %s", path, err)
		return ListedModel{}, false
	}
	mf, mtime, err := manifest.FromFile(path)
	if err != nil {
		log.Warnf("skipping manifest: %s", err)
		return ListedModel{}, false
	}

	model := ListedModel{
		Name:         mr.Normalize(),
		ModelRef:     mr,
		ManifestPath: path,
	}
	if opts.Verbose {
		model.Layers = mf.Layers
		model.Config = mf.Config
		if total, known := mf.TotalSize(); known {
			model.TotalSize = &total
		}
		model.MTime = &mtime
	}
	if opts.Verbose || opts.BlobPaths {
		primary, infos := blobs.BuildInfos(mf.Layers, mf.Config, opts.BlobsRoot)
		if primary != "" {
			model.PrimaryBlobPath = blobs.BlobPath(opts.BlobsRoot, primary)
		}
		model.BlobPaths = infos
	}
	return model, true
}
