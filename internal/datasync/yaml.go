package datasync

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// WriteYAML encodes snapshot to w.
func WriteYAML(w io.Writer, snapshot *Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("yaml.Encode() > %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a snapshot from r.
func ReadYAML(r io.Reader) (*Snapshot, error) {
	var snapshot Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}
	return &snapshot, nil
}

// WriteFile writes snapshot to path, creating its directory.
func WriteFile(path string, snapshot *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return WriteYAML(f, snapshot)
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadYAML(f)
}
