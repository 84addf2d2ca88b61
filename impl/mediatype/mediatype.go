// Package mediatype parses the media types carried by model manifest layers.
// A layer media type is a base in the reserved 'application/vnd.ollama.image.*'
// namespace, optionally followed by semicolon-separated 'key=value' parameters:
//
//	application/vnd.ollama.image.config; type=safetensors
//	application/vnd.ollama.image.template; name=chatml
//	application/vnd.ollama.image.tensor; name=input; dtype=F32; shape=1,2,3
//
// Unrecognized types in the reserved namespace are accepted and preserved.
// Types outside the reserved namespace are rejected.
package mediatype

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the reserved namespace for model layer media types.
const Prefix = "application/vnd.ollama.image."

// Kind identifies what a layer holds, derived from the media type base.
type Kind string

const (
	KindConfig          Kind = "config"
	KindTemplate        Kind = "template"
	KindTensor          Kind = "tensor"
	KindTokenizer       Kind = "tokenizer"
	KindTokenizerConfig Kind = "tokenizer.config"
	KindLicense         Kind = "license"
	KindModel           Kind = "model"
	KindAdapter         Kind = "adapter"
	KindProjector       Kind = "projector"
	KindSystem          Kind = "system"
	KindParams          Kind = "params"
	KindMessages        Kind = "messages"
	KindPrompt          Kind = "prompt"
	KindEmbed           Kind = "embed"
	KindUnknown         Kind = "unknown"
)

// kinds maps each known media type base (without the namespace prefix) to its Kind.
var kinds = map[string]Kind{
	"config":           KindConfig,
	"template":         KindTemplate,
	"tensor":           KindTensor,
	"tokenizer":        KindTokenizer,
	"tokenizer.config": KindTokenizerConfig,
	"license":          KindLicense,
	"model":            KindModel,
	"adapter":          KindAdapter,
	"projector":        KindProjector,
	"system":           KindSystem,
	"params":           KindParams,
	"messages":         KindMessages,
	"prompt":           KindPrompt,
	"embed":            KindEmbed,
}

// required lists the parameters a Kind must carry to be well-formed.
var required = map[Kind][]string{
	KindConfig: {"type"},
	KindTensor: {"name", "dtype", "shape"},
}

// MediaType is one parsed layer media type.
type MediaType struct {
	// Base is the media type without parameters, e.g. 'application/vnd.ollama.image.tensor'
	Base string
	// Kind classifies the base; KindUnknown for unrecognized reserved types
	Kind Kind
	// Params holds the 'key=value' parameters, keys lowercased
	Params map[string]string
	raw    string
}

// Parse parses 'input' into a MediaType. Parameters are split on ';' as
// 'key=value' pairs with no quoting support, matching what the model store
// writes.
func Parse(input string) (MediaType, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return MediaType{}, fmt.Errorf("empty media type string")
	}
	parts := strings.Split(input, ";")
	base := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(base, Prefix) {
		return MediaType{}, fmt.Errorf("invalid media type base (expected %s*): %s", Prefix, base)
	}
	params := map[string]string{}
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			params[k] = strings.TrimSpace(v)
		}
	}
	kind, known := kinds[strings.TrimPrefix(base, Prefix)]
	if !known {
		kind = KindUnknown
	}
	for _, param := range required[kind] {
		if _, exists := params[param]; !exists {
			return MediaType{}, fmt.Errorf("media type %s missing required parameter: %s", base, param)
		}
	}
	mt := MediaType{Base: base, Kind: kind, Params: params, raw: input}
	if kind == KindTensor {
		if _, err := mt.TensorShape(); err != nil {
			return MediaType{}, err
		}
	}
	return mt, nil
}

// String returns the media type as it appeared in the manifest.
func (mt MediaType) String() string {
	return mt.raw
}

// IsDeprecated returns true for media types the model store no longer writes.
func (mt MediaType) IsDeprecated() bool {
	return mt.Kind == KindModel || mt.Kind == KindEmbed
}

// TensorShape parses the 'shape' parameter of a tensor media type into its
// integer dimensions. Returns nil for non-tensor types or an empty shape.
func (mt MediaType) TensorShape() ([]int64, error) {
	raw, exists := mt.Params["shape"]
	if !exists || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var dims []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid shape component (not an integer): %s", part)
		}
		dims = append(dims, dim)
	}
	return dims, nil
}
