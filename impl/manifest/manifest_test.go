package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

var manifestJson = `{
  "schemaVersion": 2,
  "mediaType": "application/vnd.docker.distribution.manifest.v2+json",
  "config": {
    "mediaType": "application/vnd.docker.container.image.v1+json",
    "digest": "sha256:a406579ee4ce55b18527a8c21c2424533b4e0e9e3ca6e2d2f895f459e2251e1f",
    "size": 485
  },
  "layers": [
    {
      "mediaType": "application/vnd.ollama.image.model",
      "digest": "sha256:ff82381e2bea77d91c1b824c7afb83f6fb73e9f7de9dda631bcdbca564aa5435",
      "size": 4113301824
    },
    {
      "mediaType": "application/vnd.ollama.image.template",
      "digest": "sha256:43070e2d4e532684de521b885f385d0841030efa2b1a20bafb76133a5e1379c1"
    }
  ]
}`

func TestFromFile(t *testing.T) {
	td, err := os.MkdirTemp("", "")
	if err != nil {
		t.FailNow()
	}
	defer os.RemoveAll(td)
	mf := filepath.Join(td, "7b")
	os.WriteFile(mf, []byte(manifestJson), 0644)

	m, mtime, err := FromFile(mf)
	if err != nil {
		t.Fatal(err)
	}
	if mtime == 0 {
		t.FailNow()
	}
	if len(m.Layers) != 2 || m.Config == nil {
		t.FailNow()
	}
	if m.Layers[0].Size == nil || *m.Layers[0].Size != 4113301824 {
		t.FailNow()
	}
	if m.Layers[1].Size != nil {
		t.FailNow()
	}
	if m.Config.Digest != "sha256:a406579ee4ce55b18527a8c21c2424533b4e0e9e3ca6e2d2f895f459e2251e1f" {
		t.FailNow()
	}
}

func TestFromFileErrors(t *testing.T) {
	td, err := os.MkdirTemp("", "")
	if err != nil {
		t.FailNow()
	}
	defer os.RemoveAll(td)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"layers": [`},
		{"layer-no-digest", `{"layers": [{"mediaType": "application/vnd.ollama.image.model", "size": 1}]}`},
		{"config-no-digest", `{"layers": [], "config": {"mediaType": "application/vnd.ollama.image.config"}}`},
	}
	for _, test := range tests {
		mf := filepath.Join(td, test.name)
		os.WriteFile(mf, []byte(test.body), 0644)
		if _, _, err := FromFile(mf); err == nil {
			t.Errorf("expected error for %s", test.name)
		}
	}
	if _, _, err := FromFile(filepath.Join(td, "no-such-file")); err == nil {
		t.FailNow()
	}
}

func TestTotalSize(t *testing.T) {
	sz := func(v int64) *int64 { return &v }

	m := Manifest{
		Layers: []Layer{{Digest: "sha256:aa", Size: sz(100)}, {Digest: "sha256:bb"}, {Digest: "sha256:cc", Size: sz(50)}},
		Config: &Layer{Digest: "sha256:dd", Size: sz(5)},
	}
	if total, ok := m.TotalSize(); !ok || total != 155 {
		t.FailNow()
	}

	m = Manifest{Layers: []Layer{{Digest: "sha256:aa"}}, Config: &Layer{Digest: "sha256:bb"}}
	if _, ok := m.TotalSize(); ok {
		t.FailNow()
	}

	m = Manifest{}
	if _, ok := m.TotalSize(); ok {
		t.FailNow()
	}
}
