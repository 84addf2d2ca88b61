package subcmd

import (
	"fmt"
	"path/filepath"

	"github.com/Exotik850/ollama-file-find/impl/config"
	"github.com/Exotik850/ollama-file-find/impl/globals"
	"github.com/Exotik850/ollama-file-find/impl/mediatype"
	"github.com/Exotik850/ollama-file-find/impl/scan"
)

// Verify scans the models directory, resolves every referenced blob to its
// path in the blob store, and reports blobs that are missing or whose size on
// disk disagrees with the size declared in the manifest. Returns an error if
// any problem was found so the process exits non-zero.
func Verify() error {
	scanCfg := config.GetScanConfig()
	modelsDir := config.ResolveModelsDir(config.GetModelsDir())
	models, err := scan.Scan(scan.Opts{
		Root:          filepath.Join(modelsDir, globals.ManifestsDir),
		BlobsRoot:     filepath.Join(modelsDir, globals.BlobsDir),
		IncludeHidden: scanCfg.IncludeHidden,
		BlobPaths:     true,
	})
	if err != nil {
		return fmt.Errorf("error scanning the models directory: %s", err)
	}
	problems := 0
	for _, model := range models {
		for _, blob := range model.BlobPaths {
			switch {
			case !blob.Exists:
				problems++
				fmt.Printf("%s: missing %s blob %s (%s)\n", model.Name, blobKind(blob.MediaType), blob.Digest, blob.Path)
			case !blob.SizeOk:
				problems++
				fmt.Printf("%s: size mismatch for %s blob %s: declared %d, on disk %d\n",
					model.Name, blobKind(blob.MediaType), blob.Digest, *blob.DeclaredSize, *blob.ActualSize)
			}
		}
	}
	if problems != 0 {
		return fmt.Errorf("found %d problem(s) across %d model(s)", problems, len(models))
	}
	fmt.Printf("verified %d model(s): all referenced blobs are present with consistent sizes\n", len(models))
	return nil
}

// blobKind labels a blob by its parsed media type kind, falling back to the
// raw media type for types outside the reserved namespace (e.g. the docker
// config media type).
func blobKind(mt string) string {
	if parsed, err := mediatype.Parse(mt); err == nil {
		return string(parsed.Kind)
	}
	return mt
}
