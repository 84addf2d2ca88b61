package mediatype

import (
	"testing"
)

func TestParseConfig(t *testing.T) {
	mt, err := Parse("application/vnd.ollama.image.config; type=gguf")
	if err != nil {
		t.Fatal(err)
	}
	if mt.Kind != KindConfig || mt.Params["type"] != "gguf" {
		t.FailNow()
	}
	// config requires a type parameter
	if _, err := Parse("application/vnd.ollama.image.config"); err == nil {
		t.FailNow()
	}
}

func TestParseTemplate(t *testing.T) {
	mt, err := Parse("application/vnd.ollama.image.template; name=chatml")
	if err != nil {
		t.Fatal(err)
	}
	if mt.Kind != KindTemplate || mt.Params["name"] != "chatml" {
		t.FailNow()
	}
	// the name parameter is optional
	mt, err = Parse("application/vnd.ollama.image.template")
	if err != nil || mt.Params["name"] != "" {
		t.FailNow()
	}
}

func TestParseTensor(t *testing.T) {
	mt, err := Parse("application/vnd.ollama.image.tensor; name=input; dtype=F32; shape=1, 2,3")
	if err != nil {
		t.Fatal(err)
	}
	if mt.Kind != KindTensor || mt.Params["name"] != "input" || mt.Params["dtype"] != "F32" {
		t.FailNow()
	}
	shape, err := mt.TensorShape()
	if err != nil || len(shape) != 3 || shape[0] != 1 || shape[1] != 2 || shape[2] != 3 {
		t.FailNow()
	}

	if _, err := Parse("application/vnd.ollama.image.tensor; name=input; dtype=F32; shape=1,x"); err == nil {
		t.FailNow()
	}
	if _, err := Parse("application/vnd.ollama.image.tensor; name=input"); err == nil {
		t.FailNow()
	}
}

func TestParseLegacyModel(t *testing.T) {
	mt, err := Parse("application/vnd.ollama.image.model")
	if err != nil {
		t.Fatal(err)
	}
	if mt.Kind != KindModel || !mt.IsDeprecated() {
		t.FailNow()
	}
}

func TestParseUnknownReserved(t *testing.T) {
	original := "application/vnd.ollama.image.future; foo=bar"
	mt, err := Parse(original)
	if err != nil {
		t.Fatal(err)
	}
	if mt.Kind != KindUnknown || mt.String() != original {
		t.FailNow()
	}
}

func TestRejectNonReserved(t *testing.T) {
	for _, input := range []string{"text/plain", "", "application/vnd.oci.image.layer.v1.tar"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}
