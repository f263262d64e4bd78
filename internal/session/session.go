// Package session owns the current snapshot of lists for one run of the
// program and feeds events to the store.
package session

import (
	"github.com/rs/zerolog"

	"github.com/Makepad-fr/doit/internal/event"
	"github.com/Makepad-fr/doit/internal/model"
	"github.com/Makepad-fr/doit/internal/store"
)

// Session holds the single snapshot that the UI renders from. It starts
// empty and is discarded with the process.
type Session struct {
	store *store.Store
	lists []model.TodoList
	log   zerolog.Logger
}

// New returns an empty session.
func New(s *store.Store, log zerolog.Logger) *Session {
	if s == nil {
		s = store.New()
	}
	return &Session{store: s, lists: []model.TodoList{}, log: log}
}

// Lists returns the current snapshot. Callers must treat it as read-only;
// Dispatch replaces it rather than changing it.
func (s *Session) Lists() []model.TodoList { return s.lists }

// List looks up one list in the current snapshot.
func (s *Session) List(id string) (model.TodoList, bool) {
	i := model.FindList(s.lists, id)
	if i < 0 {
		return model.TodoList{}, false
	}
	return s.lists[i], true
}

// Dispatch applies e and swaps in the resulting snapshot. It reports whether
// the snapshot changed.
func (s *Session) Dispatch(e event.Event) bool {
	next := e.Apply(s.store, s.lists)
	changed := !store.Same(s.lists, next)
	s.log.Debug().
		Str("op", string(e.Op)).
		Str("list", e.ListID).
		Str("todo", e.TodoID).
		Bool("changed", changed).
		Msg("dispatch")
	s.lists = next
	return changed
}

// Result summarizes a script run.
type Result struct {
	Applied int
	Ignored int
}

// Run resolves and dispatches every step of script in order.
func (s *Session) Run(script *event.Script) Result {
	var r Result
	for i, st := range script.Events {
		if s.Dispatch(st.Resolve(s.lists)) {
			r.Applied++
			continue
		}
		r.Ignored++
		s.log.Debug().Int("step", i+1).Str("op", string(st.Op)).Bool("changed", false).Msg("step ignored")
	}
	return r
}
