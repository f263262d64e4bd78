package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/doit/internal/model"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 10, "██████████ 100%"},
		{1, 4, 2, "█░░░░  25%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBar(tt.done, tt.total, tt.width))
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("MONO")
	assert.Equal(t, "mono", Current().Name)
	assert.Equal(t, "[x]", Current().BoxChecked)

	SetTheme("neon")
	assert.Equal(t, "◼", Current().BoxChecked)

	SetTheme("unknown")
	assert.Equal(t, "classic", Current().Name)
}

func TestSnapshotLines(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	lists := []model.TodoList{{
		ID: "1", Name: "Groceries",
		Todos: []model.Todo{
			{ID: "2", Title: "Milk", Completed: true},
			{ID: "3", Title: "Eggs", Note: "2 dozen"},
		},
	}}

	flat := strings.Join(SnapshotLines(lists, false), "\n")
	assert.Contains(t, flat, "Groceries")
	assert.Contains(t, flat, " 1. [x] Milk")
	assert.Contains(t, flat, " 2. [ ] Eggs  2 dozen")
	assert.Contains(t, flat, " 50%")

	grouped := SnapshotLines(lists, true)
	joined := strings.Join(grouped, "\n")
	require.Less(t, strings.Index(joined, "Pending"), strings.Index(joined, "Done"))
	assert.Less(t, strings.Index(joined, "Eggs"), strings.Index(joined, "Milk"))

	assert.Equal(t, []string{"no lists"}, SnapshotLines(nil, false))
}

func TestTodoLineTruncates(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	line := TodoLine(1, model.Todo{Title: strings.Repeat("a", 100)})
	assert.True(t, strings.HasSuffix(line, "..."))

	t.Run("multibyte titles are cut on rune boundaries", func(t *testing.T) {
		line := TodoLine(1, model.Todo{Title: strings.Repeat("é", 100)})
		assert.True(t, utf8.ValidString(line))
		assert.Contains(t, line, strings.Repeat("é", maxTitle-3)+"...")
		assert.NotContains(t, line, strings.Repeat("é", maxTitle-2))

		short := TodoLine(1, model.Todo{Title: strings.Repeat("é", 50)})
		assert.True(t, strings.HasSuffix(short, strings.Repeat("é", 50)), "50 runes fit even though they are 100 bytes")
	})
}

func TestPanelAndMessages(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	Panel(&buf, []string{"hello"})
	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "┌")

	buf.Reset()
	OK(&buf, "saved")
	assert.Equal(t, "x saved\n", buf.String())

	buf.Reset()
	Fail(&buf, "nope")
	assert.Equal(t, "✖ nope\n", buf.String())
}
