package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/doit/internal/model"
)

var at = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func sample() Snapshot {
	return Snapshot{
		ExportedAt: at,
		Lists: []model.TodoList{{
			ID:   "1",
			Name: "Groceries",
			Todos: []model.Todo{
				{ID: "2", Title: "Milk", Completed: true},
				{ID: "3", Title: "Eggs", Note: "2 dozen"},
			},
		}},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatJSON))

	var got Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample().Lists, got.Lists)
	assert.True(t, at.Equal(got.ExportedAt))
	assert.Contains(t, buf.String(), `"note": "2 dozen"`)
	assert.NotContains(t, buf.String(), `"note": ""`, "empty notes are omitted")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), FormatYAML))
	assert.Contains(t, buf.String(), "name: Groceries")
	assert.Contains(t, buf.String(), "note: 2 dozen")

	var got Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample().Lists, got.Lists)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Snapshot{ExportedAt: at}, FormatJSON))
	assert.Contains(t, buf.String(), `"lists": []`)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, sample(), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = ToDir(t.TempDir(), sample(), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	p, err := ToDir(dir, sample(), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "doit-20261019-083000.yaml"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Milk")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("out.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("out.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("out.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("out"))
}
