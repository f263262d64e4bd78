// Package event describes user-triggered mutations as values and applies
// them to a snapshot through the store.
package event

import (
	"fmt"

	"github.com/Makepad-fr/doit/internal/model"
	"github.com/Makepad-fr/doit/internal/store"
)

// Op names a mutation.
type Op string

const (
	OpAddList    Op = "add-list"
	OpRenameList Op = "rename-list"
	OpDeleteList Op = "delete-list"
	OpAddTodo    Op = "add-todo"
	OpDeleteTodo Op = "delete-todo"
	OpToggleTodo Op = "toggle-todo"
	OpEditTodo   Op = "edit-todo"
	OpToggleAll  Op = "toggle-all"
)

// Ops lists every known operation in a stable order.
var Ops = []Op{
	OpAddList, OpRenameList, OpDeleteList,
	OpAddTodo, OpDeleteTodo, OpToggleTodo, OpEditTodo, OpToggleAll,
}

// Event carries the parameters of one mutation. Which fields matter depends
// on Op; the others are ignored.
type Event struct {
	Op        Op
	ListID    string
	TodoID    string
	Name      string // add-list, rename-list
	Title     string // add-todo, edit-todo
	Note      string // add-todo, edit-todo
	Completed bool   // toggle-all
}

// AddList and the functions below build events for the UI layers.
func AddList(name string) Event { return Event{Op: OpAddList, Name: name} }

func RenameList(listID, name string) Event {
	return Event{Op: OpRenameList, ListID: listID, Name: name}
}

func DeleteList(listID string) Event { return Event{Op: OpDeleteList, ListID: listID} }

func AddTodo(listID, title, note string) Event {
	return Event{Op: OpAddTodo, ListID: listID, Title: title, Note: note}
}

func DeleteTodo(listID, todoID string) Event {
	return Event{Op: OpDeleteTodo, ListID: listID, TodoID: todoID}
}

func ToggleTodo(listID, todoID string) Event {
	return Event{Op: OpToggleTodo, ListID: listID, TodoID: todoID}
}

func EditTodo(listID, todoID, title, note string) Event {
	return Event{Op: OpEditTodo, ListID: listID, TodoID: todoID, Title: title, Note: note}
}

func ToggleAll(listID string, completed bool) Event {
	return Event{Op: OpToggleAll, ListID: listID, Completed: completed}
}

// Apply runs the event against lists. Unknown ops leave lists unchanged.
func (e Event) Apply(s *store.Store, lists []model.TodoList) []model.TodoList {
	switch e.Op {
	case OpAddList:
		return s.AddList(lists, e.Name)
	case OpRenameList:
		i := model.FindList(lists, e.ListID)
		if i < 0 {
			return lists
		}
		updated := lists[i]
		updated.Name = e.Name
		return s.UpdateList(lists, updated)
	case OpDeleteList:
		return s.DeleteList(lists, e.ListID)
	case OpAddTodo:
		return s.AddTodo(lists, e.ListID, e.Title, e.Note)
	case OpDeleteTodo:
		return s.DeleteTodo(lists, e.ListID, e.TodoID)
	case OpToggleTodo:
		return s.ToggleComplete(lists, e.ListID, e.TodoID)
	case OpEditTodo:
		return s.UpdateTodo(lists, e.ListID, e.TodoID, e.Title, e.Note)
	case OpToggleAll:
		return s.ToggleAllInList(lists, e.ListID, e.Completed)
	}
	return lists
}

func (e Event) String() string {
	switch e.Op {
	case OpAddList:
		return fmt.Sprintf("%s %q", e.Op, e.Name)
	case OpRenameList:
		return fmt.Sprintf("%s %s %q", e.Op, e.ListID, e.Name)
	case OpDeleteList:
		return fmt.Sprintf("%s %s", e.Op, e.ListID)
	case OpAddTodo:
		return fmt.Sprintf("%s %s %q", e.Op, e.ListID, e.Title)
	case OpEditTodo:
		return fmt.Sprintf("%s %s/%s %q", e.Op, e.ListID, e.TodoID, e.Title)
	case OpToggleAll:
		return fmt.Sprintf("%s %s %t", e.Op, e.ListID, e.Completed)
	}
	return fmt.Sprintf("%s %s/%s", e.Op, e.ListID, e.TodoID)
}
