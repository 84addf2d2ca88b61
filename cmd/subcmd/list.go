package subcmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Exotik850/ollama-file-find/impl/config"
	"github.com/Exotik850/ollama-file-find/impl/globals"
	"github.com/Exotik850/ollama-file-find/impl/scan"
)

// List scans the models directory and prints the inventory to the console.
// Output is one model name per line when plain text was requested and neither
// verbose detail nor blob resolution is in effect; otherwise JSON.
func List() error {
	scanCfg := config.GetScanConfig()
	modelsDir := config.ResolveModelsDir(config.GetModelsDir())
	models, err := scan.Scan(scan.Opts{
		Root:          filepath.Join(modelsDir, globals.ManifestsDir),
		BlobsRoot:     filepath.Join(modelsDir, globals.BlobsDir),
		IncludeHidden: scanCfg.IncludeHidden,
		Verbose:       scanCfg.Verbose,
		BlobPaths:     scanCfg.BlobPaths,
	})
	if err != nil {
		return fmt.Errorf("error scanning the models directory: %s", err)
	}
	if scanCfg.Plain && !scanCfg.Verbose && !scanCfg.BlobPaths {
		for _, model := range models {
			fmt.Println(model.Name)
		}
		return nil
	}
	rendered, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return fmt.Errorf("error rendering the model list: %s", err)
	}
	fmt.Println(string(rendered))
	return nil
}
