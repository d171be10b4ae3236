// Package examples bundles the sample documents offered by the CLI picker
// and the playground server.
package examples

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed examples.yaml
var bundle []byte

//go:embed examples.yaml
var bundleFS embed.FS

// FS exposes the raw catalog as examples.yaml so callers can copy it as a
// starting point for their own catalogs.
func FS() fs.FS {
	return bundleFS
}

// ErrUnknownExample is returned by Get for names not in the bundle.
var ErrUnknownExample = errors.New("examples: unknown example")

// Example is one bundled sample document.
type Example struct {
	Name        string `yaml:"name" json:"name"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Markup      string `yaml:"markup" json:"markup"`
}

type catalog struct {
	Examples []Example `yaml:"examples"`
}

var (
	loadOnce sync.Once
	loaded   []Example
	loadErr  error
)

// Decode parses a catalog document in the bundled format.
func Decode(data []byte) ([]Example, error) {
	var doc catalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "examples: decode catalog")
	}
	seen := make(map[string]struct{}, len(doc.Examples))
	for _, ex := range doc.Examples {
		if ex.Name == "" {
			return nil, errors.New("examples: example without a name")
		}
		if _, dup := seen[ex.Name]; dup {
			return nil, errors.Newf("examples: duplicate example %q", ex.Name)
		}
		seen[ex.Name] = struct{}{}
	}
	return doc.Examples, nil
}

// All returns the bundled examples in catalog order.
func All() ([]Example, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Decode(bundle)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]Example(nil), loaded...), nil
}

// Names lists the bundled example names in catalog order.
func Names() []string {
	all, err := All()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for _, ex := range all {
		names = append(names, ex.Name)
	}
	return names
}

// Get returns the named example.
func Get(name string) (Example, error) {
	all, err := All()
	if err != nil {
		return Example{}, err
	}
	for _, ex := range all {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Example{}, errors.WithHintf(errors.Wrapf(ErrUnknownExample, "%q", name), "available examples: %v", Names())
}
