package model

// Todo is a single task entry inside a list.
type Todo struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	Note      string `json:"note,omitempty" yaml:"note,omitempty"`
}

// TodoList is a named, ordered container of todos. It owns its todos;
// nothing else references them.
type TodoList struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Todos []Todo `json:"todos" yaml:"todos"`
}

// Stats counts completed and pending todos in the list.
func (l TodoList) Stats() (done, pending int) {
	for _, t := range l.Todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// AllCompleted reports whether the list has todos and every one of them is done.
func (l TodoList) AllCompleted() bool {
	if len(l.Todos) == 0 {
		return false
	}
	done, _ := l.Stats()
	return done == len(l.Todos)
}

// FindList returns the index of the list with the given id, or -1.
func FindList(lists []TodoList, id string) int {
	for i, l := range lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// FindTodo returns the index of the todo with the given id, or -1.
func (l TodoList) FindTodo(id string) int {
	for i, t := range l.Todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
