// Package store holds the state transitions for lists and their todos.
//
// Every operation takes the current snapshot and returns the next one. The
// input is never modified: a change builds new slices, and a rejected
// operation (blank text, unknown id) returns the input slice itself.
package store

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/doit/internal/model"
)

// Store applies mutations to list snapshots. It carries the identifier
// generator so ids are unique within the snapshots it produces.
type Store struct {
	newID IDFunc
}

// Option configures a Store.
type Option func(*Store)

// WithIDs replaces the default UUID generator.
func WithIDs(f IDFunc) Option {
	return func(s *Store) {
		if f != nil {
			s.newID = f
		}
	}
}

// New returns a Store using random UUIDs unless overridden.
func New(opts ...Option) *Store {
	s := &Store{newID: UUIDs()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddList appends an empty list named name.
func (s *Store) AddList(lists []model.TodoList, name string) []model.TodoList {
	name = strings.TrimSpace(name)
	if name == "" {
		return lists
	}
	next := make([]model.TodoList, 0, len(lists)+1)
	next = append(next, lists...)
	return append(next, model.TodoList{ID: s.newID(), Name: name, Todos: []model.Todo{}})
}

// UpdateList replaces the list with updated.ID by updated, keeping its
// position. A blank name is rejected like in AddList.
func (s *Store) UpdateList(lists []model.TodoList, updated model.TodoList) []model.TodoList {
	i := model.FindList(lists, updated.ID)
	if i < 0 {
		return lists
	}
	updated.Name = strings.TrimSpace(updated.Name)
	if updated.Name == "" {
		return lists
	}
	updated.Todos = slices.Clone(updated.Todos)
	if updated.Todos == nil {
		updated.Todos = []model.Todo{}
	}
	next := slices.Clone(lists)
	next[i] = updated
	return next
}

// DeleteList removes the list with listID together with its todos.
func (s *Store) DeleteList(lists []model.TodoList, listID string) []model.TodoList {
	i := model.FindList(lists, listID)
	if i < 0 {
		return lists
	}
	next := make([]model.TodoList, 0, len(lists)-1)
	next = append(next, lists[:i]...)
	return append(next, lists[i+1:]...)
}

// Same reports whether a and b are the same snapshot. Operations return
// their input when they reject it, so Same(in, out) means nothing changed.
func Same(a, b []model.TodoList) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
