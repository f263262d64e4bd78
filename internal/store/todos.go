package store

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/doit/internal/model"
)

// editTodos rebuilds the list with listID using fn. fn receives the current
// todos and reports whether it produced a change; if not, lists is returned.
func editTodos(lists []model.TodoList, listID string, fn func([]model.Todo) ([]model.Todo, bool)) []model.TodoList {
	i := model.FindList(lists, listID)
	if i < 0 {
		return lists
	}
	todos, changed := fn(lists[i].Todos)
	if !changed {
		return lists
	}
	next := slices.Clone(lists)
	next[i].Todos = todos
	return next
}

// mapTodo rebuilds the todo with todoID using fn.
func mapTodo(lists []model.TodoList, listID, todoID string, fn func(model.Todo) model.Todo) []model.TodoList {
	return editTodos(lists, listID, func(todos []model.Todo) ([]model.Todo, bool) {
		j := slices.IndexFunc(todos, func(t model.Todo) bool { return t.ID == todoID })
		if j < 0 {
			return todos, false
		}
		next := slices.Clone(todos)
		next[j] = fn(next[j])
		return next, true
	})
}

// AddTodo appends a pending todo to the list with listID.
func (s *Store) AddTodo(lists []model.TodoList, listID, title, note string) []model.TodoList {
	title = strings.TrimSpace(title)
	if title == "" {
		return lists
	}
	return editTodos(lists, listID, func(todos []model.Todo) ([]model.Todo, bool) {
		next := make([]model.Todo, 0, len(todos)+1)
		next = append(next, todos...)
		return append(next, model.Todo{ID: s.newID(), Title: title, Note: strings.TrimSpace(note)}), true
	})
}

// DeleteTodo removes a todo, keeping the order of the others.
func (s *Store) DeleteTodo(lists []model.TodoList, listID, todoID string) []model.TodoList {
	return editTodos(lists, listID, func(todos []model.Todo) ([]model.Todo, bool) {
		j := slices.IndexFunc(todos, func(t model.Todo) bool { return t.ID == todoID })
		if j < 0 {
			return todos, false
		}
		next := make([]model.Todo, 0, len(todos)-1)
		next = append(next, todos[:j]...)
		return append(next, todos[j+1:]...), true
	})
}

// ToggleComplete flips the completed flag of one todo.
func (s *Store) ToggleComplete(lists []model.TodoList, listID, todoID string) []model.TodoList {
	return mapTodo(lists, listID, todoID, func(t model.Todo) model.Todo {
		t.Completed = !t.Completed
		return t
	})
}

// UpdateTodo sets the title and note of one todo. A blank title is rejected.
func (s *Store) UpdateTodo(lists []model.TodoList, listID, todoID, title, note string) []model.TodoList {
	title = strings.TrimSpace(title)
	if title == "" {
		return lists
	}
	return mapTodo(lists, listID, todoID, func(t model.Todo) model.Todo {
		t.Title = title
		t.Note = strings.TrimSpace(note)
		return t
	})
}

// ToggleAllInList forces every todo in the list to completed.
func (s *Store) ToggleAllInList(lists []model.TodoList, listID string, completed bool) []model.TodoList {
	return editTodos(lists, listID, func(todos []model.Todo) ([]model.Todo, bool) {
		if !slices.ContainsFunc(todos, func(t model.Todo) bool { return t.Completed != completed }) {
			return todos, false
		}
		next := slices.Clone(todos)
		for j := range next {
			next[j].Completed = completed
		}
		return next, true
	})
}
