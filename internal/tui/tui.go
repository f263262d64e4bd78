// Package tui is the interactive front end: a Bubble Tea program that turns
// key presses into events and redraws from the session snapshot.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/doit/internal/event"
	"github.com/Makepad-fr/doit/internal/export"
	"github.com/Makepad-fr/doit/internal/session"
	"github.com/Makepad-fr/doit/internal/ui"
)

type screen int

const (
	screenSplash screen = iota
	screenLists
	screenTodos
)

type inputMode int

const (
	modeNone inputMode = iota
	modeAddList
	modeRenameList
	modeAddTodo
	modeEditTodo
)

// Options tune the program from config.
type Options struct {
	Splash       bool
	ExportDir    string
	ExportFormat string

	// Now stamps exports; defaults to time.Now.
	Now func() time.Time
}

// Model implements tea.Model.
type Model struct {
	session *session.Session
	opt     Options

	screen screen
	lists  list.Model
	todos  list.Model
	listID string // list shown on the todos screen

	// Inline add / edit / rename
	mode      inputMode
	title     textinput.Model
	note      textinput.Model
	focusNote bool
	editID    string
	inputErr  string

	status        string
	width, height int
}

var (
	addKey    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	renameKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename"))
	editKey   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteKey = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	openKey   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	toggleKey = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	allKey    = key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "toggle all"))
	exportKey = key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export"))
	backKey   = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// New builds the model around an existing session.
func New(s *session.Session, opt Options) Model {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.ExportDir == "" {
		opt.ExportDir = "."
	}
	if opt.ExportFormat == "" {
		opt.ExportFormat = export.FormatJSON
	}

	m := Model{
		session: s,
		opt:     opt,
		screen:  screenLists,
		width:   80,
		height:  24,
	}
	if opt.Splash {
		m.screen = screenSplash
	}

	m.lists = newList(listDelegate{}, "list", "lists", []key.Binding{addKey, renameKey, deleteKey, openKey, exportKey, quitKey})
	m.todos = newList(todoDelegate{}, "todo", "todos", []key.Binding{addKey, editKey, toggleKey, allKey, deleteKey, exportKey, backKey, quitKey})

	m.title = textinput.New()
	m.title.Prompt = "> "
	m.title.CharLimit = 200
	m.note = textinput.New()
	m.note.Prompt = "note> "
	m.note.Placeholder = "optional"
	m.note.CharLimit = 500

	m.refresh()
	m.resize()
	return m
}

func newList(d list.ItemDelegate, singular, plural string, extra []key.Binding) list.Model {
	t := ui.Current()
	l := list.New(nil, d, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.SetStatusBarItemName(singular, plural)
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }
	return l
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(s *session.Session, opt Options) error {
	_, err := tea.NewProgram(New(s, opt), tea.WithAltScreen()).Run()
	return err
}

// refresh rebuilds both lists from the current snapshot.
func (m *Model) refresh() {
	lists := m.session.Lists()
	done, pending := countTodos(m)
	m.lists.Title = ui.Header("Lists", done, pending)
	m.lists.SetItems(listItems(lists))
	clamp(&m.lists)

	if m.screen != screenTodos {
		return
	}
	l, ok := m.session.List(m.listID)
	if !ok {
		m.screen = screenLists
		m.listID = ""
		return
	}
	d, p := l.Stats()
	m.todos.Title = ui.Header(l.Name, d, p)
	m.todos.SetItems(todoItems(l.Todos))
	clamp(&m.todos)
}

func countTodos(m *Model) (done, pending int) {
	for _, l := range m.session.Lists() {
		d, p := l.Stats()
		done += d
		pending += p
	}
	return
}

func clamp(l *list.Model) {
	if n := len(l.Items()); n > 0 && l.Index() >= n {
		l.Select(n - 1)
	}
}

func selectLast(l *list.Model) {
	if n := len(l.Items()); n > 0 {
		l.Select(n - 1)
	}
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != modeNone {
		h -= 3
		if m.mode == modeAddTodo || m.mode == modeEditTodo {
			h--
		}
	}
	if m.status != "" {
		h--
	}
	if h < 3 {
		h = 3
	}
	m.lists.SetSize(m.width-4, h)
	m.todos.SetSize(m.width-4, h)
}

// dispatch sends e to the session and redraws from the new snapshot.
func (m *Model) dispatch(e event.Event) {
	if m.session.Dispatch(e) {
		m.refresh()
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.mode != modeNone {
		return m.updateInput(msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if isKey {
		if m.status != "" {
			m.status = ""
			m.resize()
		}
		if km.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenSplash:
		if isKey {
			m.screen = screenLists
		}
		return m, nil
	case screenTodos:
		if isKey {
			if next, cmd, handled := m.todosKey(km); handled {
				return next, cmd
			}
		}
		var cmd tea.Cmd
		m.todos, cmd = m.todos.Update(msg)
		return m, cmd
	}

	if isKey {
		if next, cmd, handled := m.listsKey(km); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.lists, cmd = m.lists.Update(msg)
	return m, cmd
}

func (m Model) listsKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	selected, hasSel := m.lists.SelectedItem().(listEntry)
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit, true
	case "a":
		cmd := m.startInput(modeAddList, "", "", "New list name...")
		return m, cmd, true
	case "r":
		if !hasSel {
			return m, nil, true
		}
		cmd := m.startInput(modeRenameList, selected.Name, "", "List name...")
		m.editID = selected.ID
		return m, cmd, true
	case "d":
		if hasSel {
			m.dispatch(event.DeleteList(selected.ID))
		}
		return m, nil, true
	case "enter":
		if hasSel {
			m.screen = screenTodos
			m.listID = selected.ID
			m.todos.Select(0)
			m.refresh()
		}
		return m, nil, true
	case "x":
		m.export()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) todosKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	selected, hasSel := m.todos.SelectedItem().(todoEntry)
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "esc":
		m.screen = screenLists
		m.listID = ""
		m.refresh()
		return m, nil, true
	case "a":
		cmd := m.startInput(modeAddTodo, "", "", "New todo title...")
		return m, cmd, true
	case "e":
		if !hasSel {
			return m, nil, true
		}
		cmd := m.startInput(modeEditTodo, selected.Title, selected.Note, "Todo title...")
		m.editID = selected.ID
		return m, cmd, true
	case " ":
		if hasSel {
			m.dispatch(event.ToggleTodo(m.listID, selected.ID))
		}
		return m, nil, true
	case "A":
		if l, ok := m.session.List(m.listID); ok {
			m.dispatch(event.ToggleAll(m.listID, !l.AllCompleted()))
		}
		return m, nil, true
	case "d":
		if hasSel {
			m.dispatch(event.DeleteTodo(m.listID, selected.ID))
		}
		return m, nil, true
	case "x":
		m.export()
		return m, nil, true
	}
	return m, nil, false
}

// startInput opens the inline input prefilled with title and note.
func (m *Model) startInput(mode inputMode, title, note, placeholder string) tea.Cmd {
	m.mode = mode
	m.inputErr = ""
	m.focusNote = false
	m.title.SetValue(title)
	m.title.CursorEnd()
	m.title.Placeholder = placeholder
	m.note.SetValue(note)
	m.note.CursorEnd()
	m.note.Blur()
	m.resize()
	return m.title.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeNone
	m.editID = ""
	m.inputErr = ""
	m.title.SetValue("")
	m.title.Blur()
	m.note.SetValue("")
	m.note.Blur()
	m.resize()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.stopInput()
			return m, nil
		case "tab", "shift+tab":
			if m.mode == modeAddTodo || m.mode == modeEditTodo {
				m.focusNote = !m.focusNote
				var cmd tea.Cmd
				if m.focusNote {
					m.title.Blur()
					cmd = m.note.Focus()
				} else {
					m.note.Blur()
					cmd = m.title.Focus()
				}
				return m, cmd
			}
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focusNote {
		m.note, cmd = m.note.Update(msg)
	} else {
		m.title, cmd = m.title.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	note := strings.TrimSpace(m.note.Value())
	if title == "" {
		if m.mode == modeAddList || m.mode == modeRenameList {
			m.inputErr = "Name cannot be empty"
		} else {
			m.inputErr = "Title cannot be empty"
		}
		return m, nil
	}

	switch m.mode {
	case modeAddList:
		m.dispatch(event.AddList(title))
		selectLast(&m.lists)
	case modeRenameList:
		m.dispatch(event.RenameList(m.editID, title))
	case modeAddTodo:
		m.dispatch(event.AddTodo(m.listID, title, note))
		selectLast(&m.todos)
	case modeEditTodo:
		m.dispatch(event.EditTodo(m.listID, m.editID, title, note))
	}
	m.stopInput()
	return m, nil
}

func (m *Model) export() {
	snap := export.Snapshot{ExportedAt: m.opt.Now(), Lists: m.session.Lists()}
	p, err := export.ToDir(m.opt.ExportDir, snap, m.opt.ExportFormat)
	if err != nil {
		m.status = ui.Current().Error.Render("export failed: " + err.Error())
	} else {
		m.status = ui.Current().Success.Render("exported to " + p)
	}
	m.resize()
}

func (m Model) View() string {
	if m.screen == screenSplash {
		return m.splashView()
	}

	content := m.lists.View()
	if m.screen == screenTodos {
		content = m.todos.View()
	}
	if m.mode != modeNone {
		content += "\n" + m.inputView()
	}
	if m.status != "" {
		content += "\n" + m.status
	}
	return ui.PanelString(content)
}

func (m Model) inputView() string {
	t := ui.Current()
	var heading string
	switch m.mode {
	case modeAddList:
		heading = "Add new list"
	case modeRenameList:
		heading = "Rename list"
	case modeAddTodo:
		heading = "Add new todo"
	case modeEditTodo:
		heading = "Edit todo"
	}
	if m.inputErr != "" {
		heading += " - " + t.Error.Render(m.inputErr)
	}
	body := heading + "\n" + m.title.View()
	if m.mode == modeAddTodo || m.mode == modeEditTodo {
		body += "\n" + m.note.View()
	}
	bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
	return bar.Render(body)
}

const banner = `
 ____     ___     ___  _____
|  _ \   / _ \   |_ _||_   _|
| | | | | | | |   | |   | |
| |_| | | |_| |   | |   | |
|____/   \___/   |___|  |_|
`

func (m Model) splashView() string {
	t := ui.Current()
	body := t.Title.Render(strings.Trim(banner, "\n")) + "\n\n" + t.Help.Render("press any key")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, ui.PanelString(body))
}
