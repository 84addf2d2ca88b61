package subcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Exotik850/ollama-file-find/impl/config"
	"github.com/Exotik850/ollama-file-find/impl/globals"
	"github.com/Exotik850/ollama-file-find/impl/scan"
)

var (
	weightsDigest = "sha256:" + strings.Repeat("a", 64)
	configDigest  = "sha256:" + strings.Repeat("b", 64)
)

var manifestBody = fmt.Sprintf(`{
  "layers": [{"mediaType": "application/vnd.ollama.image.model", "digest": %q, "size": 3}],
  "config": {"mediaType": "application/vnd.docker.container.image.v1+json", "digest": %q, "size": 3}
}`, weightsDigest, configDigest)

// makeModelsDir builds a models directory holding one model ('mistral:7b')
// whose two blobs are both present with the declared sizes.
func makeModelsDir(t *testing.T) string {
	td, err := os.MkdirTemp("", "")
	if err != nil {
		t.FailNow()
	}
	t.Cleanup(func() { os.RemoveAll(td) })
	manifestDir := filepath.Join(td, globals.ManifestsDir, "library", "mistral")
	if err := os.MkdirAll(manifestDir, 0755); err != nil {
		t.FailNow()
	}
	if err := os.WriteFile(filepath.Join(manifestDir, "7b"), []byte(manifestBody), 0644); err != nil {
		t.FailNow()
	}
	blobsDir := filepath.Join(td, globals.BlobsDir)
	if err := os.MkdirAll(blobsDir, 0755); err != nil {
		t.FailNow()
	}
	for _, dgst := range []string{weightsDigest, configDigest} {
		if err := os.WriteFile(filepath.Join(blobsDir, strings.Replace(dgst, ":", "-", 1)), []byte("foo"), 0644); err != nil {
			t.FailNow()
		}
	}
	return td
}

// captureStdout runs the passed function with stdout redirected to a pipe and
// returns whatever the function printed.
func captureStdout(t *testing.T, testFn func()) string {
	saved := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.FailNow()
	}
	os.Stdout = w
	testFn()
	w.Close()
	os.Stdout = saved
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestListPlain(t *testing.T) {
	defer config.Set(config.Configuration{})
	td := makeModelsDir(t)
	config.Set(config.Configuration{ModelsDir: td, ScanConfig: config.ScanConfig{Plain: true}})
	out := captureStdout(t, func() {
		if err := List(); err != nil {
			t.Fatal(err)
		}
	})
	if strings.TrimSpace(out) != "mistral:7b" {
		t.FailNow()
	}
}

func TestListJson(t *testing.T) {
	defer config.Set(config.Configuration{})
	td := makeModelsDir(t)
	config.Set(config.Configuration{ModelsDir: td, ScanConfig: config.ScanConfig{Verbose: true}})
	out := captureStdout(t, func() {
		if err := List(); err != nil {
			t.Fatal(err)
		}
	})
	var models []scan.ListedModel
	if err := json.Unmarshal([]byte(out), &models); err != nil {
		t.Fatal(err)
	}
	switch {
	case len(models) != 1:
		t.FailNow()
	case models[0].Name != "mistral:7b":
		t.FailNow()
	case models[0].TotalSize == nil || *models[0].TotalSize != 6:
		t.FailNow()
	case len(models[0].Layers) != 1:
		t.FailNow()
	}
}

// Test that JSON output wins whenever verbose or blob path resolution is
// requested, even if plain text was also requested.
func TestListPlainOverridden(t *testing.T) {
	defer config.Set(config.Configuration{})
	td := makeModelsDir(t)
	scanCfgs := []config.ScanConfig{
		{Plain: true, Verbose: true},
		{Plain: true, BlobPaths: true},
		{Plain: true, Verbose: true, BlobPaths: true},
	}
	for _, scanCfg := range scanCfgs {
		config.Set(config.Configuration{ModelsDir: td, ScanConfig: scanCfg})
		out := captureStdout(t, func() {
			if err := List(); err != nil {
				t.Fatal(err)
			}
		})
		var models []scan.ListedModel
		if err := json.Unmarshal([]byte(out), &models); err != nil {
			t.Fatal(err)
		}
		if len(models) != 1 || models[0].Name != "mistral:7b" {
			t.FailNow()
		}
		switch {
		case scanCfg.Verbose && len(models[0].Layers) != 1:
			t.FailNow()
		case scanCfg.BlobPaths && len(models[0].BlobPaths) != 2:
			t.FailNow()
		}
	}
}

func TestVerify(t *testing.T) {
	defer config.Set(config.Configuration{})
	td := makeModelsDir(t)
	config.Set(config.Configuration{ModelsDir: td})

	// pristine store verifies clean
	captureStdout(t, func() {
		if err := Verify(); err != nil {
			t.Fatal(err)
		}
	})

	// corrupt the weights blob - size no longer matches the manifest
	weightsBlob := filepath.Join(td, globals.BlobsDir, strings.Replace(weightsDigest, ":", "-", 1))
	os.WriteFile(weightsBlob, []byte("foofoo"), 0644)
	out := captureStdout(t, func() {
		if err := Verify(); err == nil {
			t.Fatal("expected a verification error")
		}
	})
	if !strings.Contains(out, "size mismatch") || !strings.Contains(out, "model") {
		t.FailNow()
	}

	// remove the weights blob entirely
	os.Remove(weightsBlob)
	out = captureStdout(t, func() {
		if err := Verify(); err == nil {
			t.Fatal("expected a verification error")
		}
	})
	if !strings.Contains(out, "missing") {
		t.FailNow()
	}
}

func TestServe(t *testing.T) {
	defer config.Set(config.Configuration{})
	td := makeModelsDir(t)

	// port zero lets the http package assign a random port
	config.Set(config.Configuration{ModelsDir: td, ServeCfg: config.ServeConfig{Port: 0}})
	InitListener()
	go Serve("test", "test")

	deadline := time.Now().Add(3 * time.Second)
	for GetListener() == nil {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for the server to start")
		}
		time.Sleep(10 * time.Millisecond)
	}
	baseUrl := fmt.Sprintf("http://%s", GetListener().Addr().String())

	resp, err := http.Get(baseUrl + "/health")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.FailNow()
	}
	resp.Body.Close()

	resp, err = http.Get(baseUrl + "/v1/models?verbose=true")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.FailNow()
	}
	var models []scan.ListedModel
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(models) != 1 || models[0].Name != "mistral:7b" || models[0].TotalSize == nil {
		t.FailNow()
	}

	resp, err = http.Get(baseUrl + "/cmd/stop")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.FailNow()
	}
	resp.Body.Close()
}
