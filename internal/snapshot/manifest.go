// Package snapshot holds metadata written alongside persisted index
// snapshots.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Manifest contains metadata about a saved index snapshot.
type Manifest struct {
	FormatVersion int       `json:"format_version"`
	Identity      string    `json:"identity,omitempty"`
	Games         int       `json:"games"`
	Positions     int       `json:"positions"`
	BuiltAt       time.Time `json:"built_at"`
	Source        string    `json:"source,omitempty"`
	Compression   string    `json:"compression"`
}

const manifestFilename = "manifest.json"

// Write writes the manifest to the data directory.
func Write(dir string, m *Manifest) error {
	path := filepath.Join(dir, manifestFilename)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Read reads the manifest from a data directory.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFilename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
