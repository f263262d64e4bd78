package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/doit/internal/model"
	"github.com/Makepad-fr/doit/internal/ui"
)

// listEntry adapts a TodoList to bubbles/list.Item
type listEntry struct{ model.TodoList }

func (e listEntry) FilterValue() string { return e.Name }

// todoEntry adapts a Todo to bubbles/list.Item
type todoEntry struct{ model.Todo }

func (e todoEntry) FilterValue() string { return e.Title }

// Single-line delegates so rows look like the replay output.
type listDelegate struct{}

func (d listDelegate) Height() int                               { return 1 }
func (d listDelegate) Spacing() int                              { return 0 }
func (d listDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(listEntry)
	if !ok {
		return
	}
	t := ui.Current()
	done, pending := e.Stats()
	box := t.Muted.Render(t.BoxUnchecked)
	if e.AllCompleted() {
		box = t.Success.Render(t.BoxChecked)
	}
	counts := t.Muted.Render(fmt.Sprintf("%d/%d", done, done+pending))
	fmt.Fprintln(w, prefix(m, index)+fmt.Sprintf("%s %s  %s", box, e.Name, counts))
}

type todoDelegate struct{}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(todoEntry)
	if !ok {
		return
	}
	t := ui.Current()
	box, title := t.Muted.Render(t.BoxUnchecked), e.Title
	if e.Completed {
		box, title = t.Success.Render(t.BoxChecked), t.Done.Render(e.Title)
	}
	line := fmt.Sprintf("%s %s", box, title)
	if e.Note != "" {
		line += "  " + t.Muted.Render(e.Note)
	}
	fmt.Fprintln(w, prefix(m, index)+line)
}

func prefix(m list.Model, index int) string {
	if index == m.Index() {
		return ui.Current().Selected.Render(">") + " "
	}
	return "  "
}

func listItems(lists []model.TodoList) []list.Item {
	out := make([]list.Item, 0, len(lists))
	for _, l := range lists {
		out = append(out, listEntry{l})
	}
	return out
}

func todoItems(todos []model.Todo) []list.Item {
	out := make([]list.Item, 0, len(todos))
	for _, td := range todos {
		out = append(out, todoEntry{td})
	}
	return out
}
