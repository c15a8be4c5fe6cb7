package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avask-dev/pgdoc/pkg/pgdoc"
	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned when the manifest file does not exist.
// Callers can check for this with errors.Is(err, config.ErrManifestNotFound).
var ErrManifestNotFound = errors.New("manifest file not found")

// TableEntry declares one table source in a manifest.
type TableEntry struct {
	Owner           string   `yaml:"owner"`
	Table           string   `yaml:"table"`
	ContentColumn   string   `yaml:"content_column"`
	MetadataColumns []string `yaml:"metadata_columns,omitempty"`
	ExtractorFunc   string   `yaml:"extractor_func,omitempty"`
}

// Manifest declares a batch of document sources to load in one run.
type Manifest struct {
	Tables []TableEntry `yaml:"tables"`
	Files  []string     `yaml:"files"`
	Dirs   []string     `yaml:"dirs"`
}

// ManifestFileName is the default manifest file name inside a project
// directory.
const ManifestFileName = "pgdoc.yaml"

// Load reads and parses a manifest. path may be the manifest file itself or
// a directory containing ManifestFileName.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrManifestNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		path = filepath.Join(path, ManifestFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrManifestNotFound
		}
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Sources converts the manifest entries into validated source descriptors.
// Validation failures abort the whole conversion: a manifest is either fully
// loadable or rejected.
func (m *Manifest) Sources() ([]pgdoc.Source, error) {
	sources := make([]pgdoc.Source, 0, len(m.Tables)+len(m.Files)+len(m.Dirs))

	for i, entry := range m.Tables {
		src := pgdoc.TableSource{
			Owner:           entry.Owner,
			Table:           entry.Table,
			ContentColumn:   entry.ContentColumn,
			MetadataColumns: entry.MetadataColumns,
			ExtractorFunc:   entry.ExtractorFunc,
		}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("manifest table entry %d: %w", i, err)
		}
		sources = append(sources, src)
	}

	for i, path := range m.Files {
		src := pgdoc.FileSource{Path: path}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("manifest file entry %d: %w", i, err)
		}
		sources = append(sources, src)
	}

	for i, path := range m.Dirs {
		src := pgdoc.DirSource{Path: path}
		if err := src.Validate(); err != nil {
			return nil, fmt.Errorf("manifest dir entry %d: %w", i, err)
		}
		sources = append(sources, src)
	}

	return sources, nil
}
