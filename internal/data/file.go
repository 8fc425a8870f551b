package data

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"agri-market/internal/model"

	"gopkg.in/yaml.v3"
)

// DatasetFile is the on-disk (and over-the-wire) shape of a record
// collection.
//
// Example (YAML):
//
//	updated_at: "2026-10-14T09:00:00Z"
//	records:
//	  - id: "1"
//	    product: Rice (Basmati)
//	    category: Grains
//	    market: Delhi
//	    current_price: 45.5
//	    previous_price: 44.2
//	    unit: per kg
//	    last_updated: 2 hours ago
type DatasetFile struct {
	UpdatedAt string               `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Records   []model.MarketRecord `json:"records" yaml:"records"`
}

// FileSource loads a dataset from a JSON or YAML file, picked by extension.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (s *FileSource) Name() string { return "file:" + s.Path }

func (s *FileSource) Load(ctx context.Context) ([]model.MarketRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := LoadDatasetFile(s.Path)
	if err != nil {
		return nil, err
	}
	return PrepareRecords(f.Records)
}

// LoadDatasetFile reads and decodes a dataset file without validating it.
func LoadDatasetFile(path string) (*DatasetFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var f DatasetFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &f)
	default:
		err = json.Unmarshal(raw, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", path, err)
	}
	return &f, nil
}

// SaveDatasetFile writes records as a JSON or YAML dataset, picked by
// extension.
func SaveDatasetFile(path string, f *DatasetFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	var (
		raw []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raw, err = yaml.Marshal(f)
	default:
		raw, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
