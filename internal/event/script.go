package event

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/doit/internal/model"
)

//go:embed script.schema.json
var scriptSchemaJSON string

var scriptSchema = jsonschema.MustCompileString("script.schema.json", scriptSchemaJSON)

// Step is one scripted event. Lists and todos are referenced by name and
// title instead of ids, since ids are only known once the script runs.
type Step struct {
	Op        Op     `yaml:"op"`
	List      string `yaml:"list,omitempty"`
	Todo      string `yaml:"todo,omitempty"`
	Name      string `yaml:"name,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Note      string `yaml:"note,omitempty"`
	Completed bool   `yaml:"completed,omitempty"`
}

// Script is a YAML document holding a sequence of steps.
type Script struct {
	Events []Step `yaml:"events"`
}

// SchemaError is a single schema violation in a script.
type SchemaError struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ReadScript reads, validates and decodes a script.
func ReadScript(r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript validates data against the script schema and decodes it.
func ParseScript(data []byte) (*Script, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize script: %w", err)
	}
	var obj interface{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("normalize script: %w", err)
	}
	if err := scriptSchema.Validate(obj); err != nil {
		return nil, fmt.Errorf("invalid script: %w", schemaErrors(err))
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(ve, &errs)
	if len(errs) == 0 {
		return err
	}
	return errors.Join(errs...)
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &SchemaError{
			Path:    pointerToPath(ve.InstanceLocation),
			Message: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

var pointerUnescape = strings.NewReplacer("~1", "/", "~0", "~")

// pointerToPath turns "/events/2/op" into "events[2].op".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			fmt.Fprintf(&b, "[%s]", part)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(pointerUnescape.Replace(part))
	}
	return b.String()
}

// Resolve turns the step into an event against the current snapshot. A
// reference that matches nothing resolves to an empty id, which the store
// ignores.
func (st Step) Resolve(lists []model.TodoList) Event {
	e := Event{
		Op:        st.Op,
		Name:      st.Name,
		Title:     st.Title,
		Note:      st.Note,
		Completed: st.Completed,
	}
	i := findListByName(lists, st.List)
	if i < 0 {
		return e
	}
	e.ListID = lists[i].ID
	for _, t := range lists[i].Todos {
		if st.Todo != "" && t.Title == st.Todo {
			e.TodoID = t.ID
			break
		}
	}
	return e
}

func findListByName(lists []model.TodoList, name string) int {
	if name == "" {
		return -1
	}
	for i, l := range lists {
		if l.Name == name {
			return i
		}
	}
	return -1
}
