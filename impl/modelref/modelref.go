// Package modelref decomposes manifest paths into model references. The path of
// a manifest file relative to the manifests root encodes the model identity:
// either 'host/namespace/model/tag' or 'namespace/model/tag' with the host
// implied to be the default registry.
package modelref

import (
	"fmt"
	"strings"
)

const (
	// DefaultHost is the registry implied when a manifest path carries no host
	// component.
	DefaultHost = "registry.ollama.ai"
	// DefaultNamespace is the namespace that is elided from display names.
	DefaultNamespace = "library"
)

// ModelRef has the individual components of a model reference. If initialized
// from manifest path 'registry.ollama.ai/apple/OpenELM/latest' then the struct
// members are like so:
//
//	Host      = registry.ollama.ai
//	Namespace = apple
//	Model     = OpenELM
//	Tag       = latest
//
// Host and Namespace may be empty, meaning the defaults are implied. Model and
// Tag are always non-empty for a valid reference.
type ModelRef struct {
	Host      string `json:"host,omitempty" yaml:"host,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Model     string `json:"model" yaml:"model"`
	Tag       string `json:"tag" yaml:"tag"`
}

// ParseComponents interprets the relative path components of a manifest leaf
// file as a model reference. Exactly four components are 'host/namespace/model/tag'
// and exactly three are 'namespace/model/tag'. Any other depth is an error.
func ParseComponents(comps []string) (ModelRef, error) {
	for _, comp := range comps {
		if comp == "" {
			return ModelRef{}, fmt.Errorf("empty component in manifest path: %v", comps)
		}
	}
	switch len(comps) {
	case 3:
		return ModelRef{Namespace: comps[0], Model: comps[1], Tag: comps[2]}, nil
	case 4:
		return ModelRef{Host: comps[0], Namespace: comps[1], Model: comps[2], Tag: comps[3]}, nil
	}
	return ModelRef{}, fmt.Errorf("unable to parse manifest path components: %v", comps)
}

// Normalize formats the reference the way 'ollama list' displays model names.
// The default host and namespace are omitted: '{model}:{tag}', with a
// '{namespace}/' prefix if the namespace is non-default, and a full
// '{host}/{namespace}/' prefix if the host is non-default. A non-default host
// always forces the namespace to be shown, even the default one.
func (mr *ModelRef) Normalize() string {
	name := mr.Model + ":" + mr.Tag
	if mr.Host != "" && mr.Host != DefaultHost {
		ns := mr.Namespace
		if ns == "" {
			ns = DefaultNamespace
		}
		return mr.Host + "/" + ns + "/" + name
	}
	if mr.Namespace != "" && mr.Namespace != DefaultNamespace {
		return mr.Namespace + "/" + name
	}
	return name
}

// IsHidden returns true if any component of the reference begins with a dot.
// Hidden references are excluded from scans unless explicitly requested.
func (mr *ModelRef) IsHidden() bool {
	for _, comp := range []string{mr.Host, mr.Namespace, mr.Model, mr.Tag} {
		if strings.HasPrefix(comp, ".") {
			return true
		}
	}
	return false
}
