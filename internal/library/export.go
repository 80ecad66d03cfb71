// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/mkline/bookscout/pkg/types"
)

// ExportFile is the on-disk representation of one exported list. A list
// exported this way can be shared or archived without the database.
type ExportFile struct {
	List       string            `json:"list" yaml:"list"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Books      []types.SavedBook `json:"books" yaml:"books"`
}

// ExportYAML writes one list to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, listID, listName, path string) error {
	ef, err := s.exportFile(ctx, listID, listName)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(&ef)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes one list to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, listID, listName, path string) error {
	ef, err := s.exportFile(ctx, listID, listName)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(&ef, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportFile(ctx context.Context, listID, listName string) (ExportFile, error) {
	books, err := s.Books(ctx, listID)
	if err != nil {
		return ExportFile{}, fmt.Errorf("querying for export: %w", err)
	}
	return ExportFile{
		List:       listName,
		ExportedAt: time.Now().UTC(),
		Books:      books,
	}, nil
}
