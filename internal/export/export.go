package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/doit/internal/model"
)

// Snapshots are written for people to read or share. Nothing loads them
// back: state lives only for the length of a session.

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Lists      []model.TodoList `json:"lists" yaml:"lists"`
}

// Write encodes the snapshot to w.
func Write(w io.Writer, snap Snapshot, format string) error {
	if snap.Lists == nil {
		snap.Lists = []model.TodoList{}
	}
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName is the name ToDir uses for a snapshot taken at t.
func FileName(t time.Time, format string) string {
	return fmt.Sprintf("doit-%s.%s", t.UTC().Format("20060102-150405"), format)
}

// ToDir writes the snapshot into dir and returns the file path.
func ToDir(dir string, snap Snapshot, format string) (string, error) {
	if format != FormatJSON && format != FormatYAML {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}
	p := filepath.Join(dir, FileName(snap.ExportedAt, format))
	return p, ToFile(p, snap, format)
}

// ToFile writes the snapshot to path, replacing any existing file.
func ToFile(path string, snap Snapshot, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := Write(f, snap, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// FormatFromPath picks a format from the file extension, defaulting to JSON.
func FormatFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}
