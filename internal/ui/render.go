package ui

import (
	"fmt"

	"github.com/Makepad-fr/doit/internal/model"
)

const maxTitle = 80

// Header renders a title followed by live done/pending/total counts.
func Header(title string, done, pending int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(title),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), done+pending,
	)
}

// TodoLine renders one todo with its 1-based index, checkbox and note.
func TodoLine(index int, td model.Todo) string {
	t := Current()
	box, title := t.Muted.Render(t.BoxUnchecked), td.Title
	if r := []rune(title); len(r) > maxTitle {
		title = string(r[:maxTitle-3]) + "..."
	}
	if td.Completed {
		box, title = t.Success.Render(t.BoxChecked), t.Done.Render(title)
	}
	line := fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", index)), box, title)
	if td.Note != "" {
		line += "  " + t.Muted.Render(td.Note)
	}
	return line
}

// FlatLines renders todos in list order.
func FlatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{Current().Muted.Render("no todos")}
	}
	out := make([]string, 0, len(todos))
	for i, td := range todos {
		out = append(out, TodoLine(i+1, td))
	}
	return out
}

// GroupLines renders pending todos first, then done ones.
func GroupLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, td := range todos {
		if td.Completed {
			done = append(done, td)
		} else {
			pend = append(pend, td)
		}
	}
	t := Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, FlatLines(pend)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, FlatLines(done)...)
	}
	return lines
}

// SnapshotLines renders every list with a header and progress bar.
func SnapshotLines(lists []model.TodoList, group bool) []string {
	t := Current()
	if len(lists) == 0 {
		return []string{t.Muted.Render("no lists")}
	}
	var lines []string
	for i, l := range lists {
		if i > 0 {
			lines = append(lines, "")
		}
		d, p := l.Stats()
		lines = append(lines, Header(l.Name, d, p))
		lines = append(lines, t.Muted.Render(ProgressBar(d, d+p, 28)))
		if group {
			lines = append(lines, GroupLines(l.Todos)...)
		} else {
			lines = append(lines, FlatLines(l.Todos)...)
		}
	}
	return lines
}
