// Package sources loads source bundle and class-mapping files from disk.
// It is the boundary adapter between exported timing files and the in-memory
// structures the reconciliation engine operates on; the engine itself never
// touches the filesystem.
package sources

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/logging"
	"github.com/packleader/derbytally/pkg/records"
)

// file is the on-disk shape of a source bundle.
type file struct {
	Source  string            `yaml:"source"`
	Year    int               `yaml:"year"`
	Mapping map[string]string `yaml:"mapping"`
	Records []records.Raw     `yaml:"records"`
}

// mappingFile is the on-disk shape of a standalone class-mapping file.
type mappingFile struct {
	Mapping map[string]string `yaml:"mapping"`
}

// Load reads one source bundle file. An inline mapping section is parsed
// against the class set; a bundle without one gets an empty mapping, which
// the merge precondition will reject unless a shared mapping is attached
// later. A bundle without an explicit source name takes its file name.
func Load(ctx context.Context, path string, set classes.Set) (records.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return records.Bundle{}, errors.WrapIO("read", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return records.Bundle{}, errors.WrapParse("yaml", path, err)
	}

	mapping, err := classes.Parse(f.Mapping, set)
	if err != nil {
		return records.Bundle{}, err
	}

	if f.Source == "" {
		f.Source = filepath.Base(path)
	}

	ctx = logging.WithSource(ctx, f.Source)
	logging.FromContext(ctx).Debug().
		Int("year", f.Year).
		Int("records", len(f.Records)).
		Msg("Loaded source bundle")

	return records.Bundle{
		Source:  f.Source,
		Year:    f.Year,
		Mapping: mapping,
		Records: f.Records,
	}, nil
}

// LoadAll reads several source bundle files in order. When mappingPath is
// non-empty, the standalone mapping is loaded and merged over each bundle's
// inline mapping, standalone entries winning.
func LoadAll(ctx context.Context, paths []string, mappingPath string, set classes.Set) ([]records.Bundle, error) {
	var shared classes.Mapping
	if mappingPath != "" {
		m, err := LoadMapping(mappingPath, set)
		if err != nil {
			return nil, err
		}
		shared = m
	}

	bundles := make([]records.Bundle, 0, len(paths))
	for _, path := range paths {
		b, err := Load(ctx, path, set)
		if err != nil {
			return nil, err
		}
		for label, target := range shared {
			b.Mapping[label] = target
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

// LoadMapping reads a standalone class-mapping file.
func LoadMapping(path string, set classes.Set) (classes.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var f mappingFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return classes.Parse(f.Mapping, set)
}
