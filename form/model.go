package form

import (
	"errors"
	"fmt"
	"strings"

	"formkit/log"
)

// ErrUnknownField is wrapped by lookups for keys never registered.
var ErrUnknownField = errors.New("form: unknown field")

// ErrDuplicateKey is returned when a key is registered twice.
var ErrDuplicateKey = errors.New("form: duplicate field key")

// Model is a flat mapping from field key to current value. Its key set is
// always exactly the set of registered field keys; there are no partial
// snapshots.
type Model map[string]any

// Group is an ordered, titled list of fields (one page of the form).
type Group struct {
	title  string
	fields []Field
}

// NewGroup creates an empty group.
func NewGroup(title string) *Group {
	return &Group{title: title}
}

// Title returns the group's display title.
func (g *Group) Title() string { return g.title }

// Fields returns the group's fields in registration order.
func (g *Group) Fields() []Field { return g.fields }

// Registry is the ordered collection of all fields in a form, grouped into
// pages. Field order inside a group and group order are both stable.
type Registry struct {
	groups []*Group
	byKey  map[string]Field
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]Field)}
}

// AddGroup creates and returns a new page of the form.
func (r *Registry) AddGroup(title string) *Group {
	g := NewGroup(title)
	r.groups = append(r.groups, g)
	return g
}

// Add registers a field into g. It returns the field for chaining and
// fails on key collisions, which are always programming errors.
func (r *Registry) Add(g *Group, f Field) (Field, error) {
	if _, exists := r.byKey[f.Key()]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, f.Key())
	}
	g.fields = append(g.fields, f)
	r.byKey[f.Key()] = f
	return f, nil
}

// MustAdd is Add for declarative form construction; it panics on key
// collisions.
func (r *Registry) MustAdd(g *Group, f Field) Field {
	added, err := r.Add(g, f)
	if err != nil {
		panic(err)
	}
	return added
}

// Groups returns the registry's pages in order.
func (r *Registry) Groups() []*Group { return r.groups }

// Fields returns every registered field in group, then registration order.
func (r *Registry) Fields() []Field {
	var out []Field
	for _, g := range r.groups {
		out = append(out, g.fields...)
	}
	return out
}

// Lookup finds a field by key.
func (r *Registry) Lookup(key string) (Field, error) {
	f, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	return f, nil
}

// Len returns the number of registered fields.
func (r *Registry) Len() int { return len(r.byKey) }

// Snapshot samples every field into a flat model. Consistency holds only
// at the instant of sampling; the UI thread is the only writer, so that
// is sufficient.
func (r *Registry) Snapshot() Model {
	m := make(Model, len(r.byKey))
	for _, f := range r.Fields() {
		m[f.Key()] = f.Value()
	}
	return m
}

// Apply distributes a mapping back onto the fields. A field whose key is
// missing from m keeps its prior value and is logged; a present value the
// field rejects is handled the same way. Neither is fatal.
func (r *Registry) Apply(m Model) {
	for _, f := range r.Fields() {
		v, ok := m[f.Key()]
		if !ok {
			log.Warn("field missing from mapping, keeping current value", log.String("key", f.Key()))
			continue
		}
		if err := f.SetValue(v); err != nil {
			log.Warn("field rejected mapped value", log.String("key", f.Key()), log.Err(err))
		}
	}
}

// Reset replaces every field's value with its registered default.
func (r *Registry) Reset() {
	for _, f := range r.Fields() {
		f.Reset()
	}
}

// Filter returns the fields whose title contains keyword, case-insensitive.
// An empty keyword matches every field. The nav pane's search box uses it.
func (r *Registry) Filter(keyword string) []Field {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return r.Fields()
	}
	var out []Field
	for _, f := range r.Fields() {
		if strings.Contains(strings.ToLower(f.Title()), keyword) {
			out = append(out, f)
		}
	}
	return out
}
