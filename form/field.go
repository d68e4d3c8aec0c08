// Package form provides the data-model side of formkit: typed field
// descriptors, ordered field groups, model snapshot/apply, flat JSON
// presets, and the form controller that ties fields to the task runner.
//
// Fields are plain observable values with no toolkit dependency; the ui
// package wraps them in Fyne widgets. The controller iterates an explicit
// ordered list of descriptors instead of traversing live UI objects, so
// model semantics never depend on widget state.
package form

import (
	"fmt"
	"math"
	"slices"
)

// Field is one form input: a string key, a typed current value, a default,
// and a persistable flag deciding preset participation.
type Field interface {
	Key() string
	Title() string
	Help() string

	// Value returns the current value as one of: int, float64, bool,
	// string, []string.
	Value() any

	// SetValue applies an untyped value (e.g. decoded from a preset).
	// Malformed or out-of-range values are rejected with a *ValueError
	// and the field keeps its prior value.
	SetValue(v any) error

	Default() any
	Reset()
	Persistable() bool
	SetPersistable(p bool)
}

// ValueError reports a value rejected at the field boundary. Rejected
// values never reach the model.
type ValueError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("field %s: rejected value %v: %s", e.Key, e.Value, e.Reason)
}

// meta carries the parts every field shares.
type meta struct {
	key     string
	title   string
	help    string
	persist bool
}

func (m *meta) Key() string           { return m.key }
func (m *meta) Title() string         { return m.title }
func (m *meta) Help() string          { return m.help }
func (m *meta) Persistable() bool     { return m.persist }
func (m *meta) SetPersistable(p bool) { m.persist = p }

// IntField holds a bounded integer value.
type IntField struct {
	meta
	def, val  int
	min, max  int
	step      int
	onChanged []func(int)
}

// NewIntField creates an integer field with the given range. Use
// math.MinInt/math.MaxInt for an unbounded side.
func NewIntField(key, title, help string, def, min, max int) *IntField {
	return &IntField{
		meta: meta{key: key, title: title, help: help, persist: true},
		def:  def, val: def,
		min: min, max: max, step: 1,
	}
}

// SetStep sets the spinner increment used by the widget layer.
func (f *IntField) SetStep(step int) *IntField {
	f.step = step
	return f
}

func (f *IntField) Min() int  { return f.min }
func (f *IntField) Max() int  { return f.max }
func (f *IntField) Step() int { return f.step }

// Bounded reports whether both range ends are finite, i.e. whether a
// slider makes sense for this field.
func (f *IntField) Bounded() bool {
	return f.min != math.MinInt && f.max != math.MaxInt
}

func (f *IntField) Get() int { return f.val }

// Set applies v if it is within range.
func (f *IntField) Set(v int) error {
	if v < f.min || v > f.max {
		return &ValueError{Key: f.key, Value: v, Reason: fmt.Sprintf("outside [%d, %d]", f.min, f.max)}
	}
	changed := f.val != v
	f.val = v
	if changed {
		for _, fn := range f.onChanged {
			fn(v)
		}
	}
	return nil
}

// OnChanged registers a tracer invoked whenever the value changes.
func (f *IntField) OnChanged(fn func(int)) { f.onChanged = append(f.onChanged, fn) }

func (f *IntField) Value() any   { return f.val }
func (f *IntField) Default() any { return f.def }
func (f *IntField) Reset()       { _ = f.Set(f.def) }

func (f *IntField) SetValue(v any) error {
	switch n := v.(type) {
	case int:
		return f.Set(n)
	case float64:
		// JSON numbers decode as float64; accept integral ones only.
		if n != math.Trunc(n) {
			return &ValueError{Key: f.key, Value: v, Reason: "not an integer"}
		}
		return f.Set(int(n))
	default:
		return &ValueError{Key: f.key, Value: v, Reason: "not a number"}
	}
}

// FloatField holds a bounded floating-point value.
type FloatField struct {
	meta
	def, val  float64
	min, max  float64
	step      float64
	precision int
	onChanged []func(float64)
}

// NewFloatField creates a float field with the given range. Use
// math.Inf(-1)/math.Inf(1) for an unbounded side.
func NewFloatField(key, title, help string, def, min, max float64) *FloatField {
	return &FloatField{
		meta: meta{key: key, title: title, help: help, persist: true},
		def:  def, val: def,
		min: min, max: max, step: 0.1, precision: 2,
	}
}

// SetStep sets the spinner increment and display precision used by the
// widget layer.
func (f *FloatField) SetStep(step float64, precision int) *FloatField {
	f.step = step
	f.precision = precision
	return f
}

func (f *FloatField) Min() float64   { return f.min }
func (f *FloatField) Max() float64   { return f.max }
func (f *FloatField) Step() float64  { return f.step }
func (f *FloatField) Precision() int { return f.precision }

// Bounded reports whether both range ends are finite.
func (f *FloatField) Bounded() bool {
	return !math.IsInf(f.min, 0) && !math.IsInf(f.max, 0)
}

func (f *FloatField) Get() float64 { return f.val }

// Set applies v if it is within range.
func (f *FloatField) Set(v float64) error {
	if math.IsNaN(v) {
		return &ValueError{Key: f.key, Value: v, Reason: "not a number"}
	}
	if v < f.min || v > f.max {
		return &ValueError{Key: f.key, Value: v, Reason: fmt.Sprintf("outside [%g, %g]", f.min, f.max)}
	}
	changed := f.val != v
	f.val = v
	if changed {
		for _, fn := range f.onChanged {
			fn(v)
		}
	}
	return nil
}

// OnChanged registers a tracer invoked whenever the value changes.
func (f *FloatField) OnChanged(fn func(float64)) { f.onChanged = append(f.onChanged, fn) }

func (f *FloatField) Value() any   { return f.val }
func (f *FloatField) Default() any { return f.def }
func (f *FloatField) Reset()       { _ = f.Set(f.def) }

func (f *FloatField) SetValue(v any) error {
	switch n := v.(type) {
	case float64:
		return f.Set(n)
	case int:
		return f.Set(float64(n))
	default:
		return &ValueError{Key: f.key, Value: v, Reason: "not a number"}
	}
}

// BoolField holds a checkbox value.
type BoolField struct {
	meta
	def, val  bool
	onChanged []func(bool)
}

// NewBoolField creates a boolean field.
func NewBoolField(key, title, help string, def bool) *BoolField {
	return &BoolField{
		meta: meta{key: key, title: title, help: help, persist: true},
		def:  def, val: def,
	}
}

func (f *BoolField) Get() bool { return f.val }

func (f *BoolField) Set(v bool) {
	changed := f.val != v
	f.val = v
	if changed {
		for _, fn := range f.onChanged {
			fn(v)
		}
	}
}

// OnChanged registers a tracer invoked whenever the value changes.
func (f *BoolField) OnChanged(fn func(bool)) { f.onChanged = append(f.onChanged, fn) }

func (f *BoolField) Value() any   { return f.val }
func (f *BoolField) Default() any { return f.def }
func (f *BoolField) Reset()       { f.Set(f.def) }

func (f *BoolField) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return &ValueError{Key: f.key, Value: v, Reason: "not a boolean"}
	}
	f.Set(b)
	return nil
}

// StringField holds free-form text.
type StringField struct {
	meta
	def, val  string
	multiline bool
	secret    bool
	onChanged []func(string)
}

// NewStringField creates a text field.
func NewStringField(key, title, help, def string) *StringField {
	return &StringField{
		meta: meta{key: key, title: title, help: help, persist: true},
		def:  def, val: def,
	}
}

// Multiline marks the field for a multi-line widget.
func (f *StringField) Multiline() *StringField {
	f.multiline = true
	return f
}

// Secret marks the field for a password widget with echo disabled.
// Secret fields never persist into presets.
func (f *StringField) Secret() *StringField {
	f.secret = true
	f.persist = false
	return f
}

func (f *StringField) IsMultiline() bool { return f.multiline }
func (f *StringField) IsSecret() bool    { return f.secret }

func (f *StringField) Get() string { return f.val }

func (f *StringField) Set(v string) {
	changed := f.val != v
	f.val = v
	if changed {
		for _, fn := range f.onChanged {
			fn(v)
		}
	}
}

// OnChanged registers a tracer invoked whenever the value changes.
func (f *StringField) OnChanged(fn func(string)) { f.onChanged = append(f.onChanged, fn) }

func (f *StringField) Value() any   { return f.val }
func (f *StringField) Default() any { return f.def }
func (f *StringField) Reset()       { f.Set(f.def) }

func (f *StringField) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &ValueError{Key: f.key, Value: v, Reason: "not a string"}
	}
	f.Set(s)
	return nil
}

// OptionField holds one value out of a fixed option list. Both the string
// value and its index are observable; realtime controllers usually bind to
// the index (e.g. oscillator waveform numbers).
type OptionField struct {
	meta
	options   []string
	def, val  string
	onChanged []func(value string, index int)
}

// NewOptionField creates a single-choice field. def must be one of options.
func NewOptionField(key, title, help string, options []string, def string) *OptionField {
	return &OptionField{
		meta:    meta{key: key, title: title, help: help, persist: true},
		options: slices.Clone(options),
		def:     def, val: def,
	}
}

func (f *OptionField) Options() []string { return slices.Clone(f.options) }

func (f *OptionField) Get() string { return f.val }

// Index returns the position of the current value in the option list,
// or -1 if the value is not listed.
func (f *OptionField) Index() int { return slices.Index(f.options, f.val) }

// Set applies v if it is one of the options.
func (f *OptionField) Set(v string) error {
	idx := slices.Index(f.options, v)
	if idx < 0 {
		return &ValueError{Key: f.key, Value: v, Reason: "not an available option"}
	}
	changed := f.val != v
	f.val = v
	if changed {
		for _, fn := range f.onChanged {
			fn(v, idx)
		}
	}
	return nil
}

// OnChanged registers a tracer invoked with the new value and its index.
func (f *OptionField) OnChanged(fn func(value string, index int)) {
	f.onChanged = append(f.onChanged, fn)
}

func (f *OptionField) Value() any   { return f.val }
func (f *OptionField) Default() any { return f.def }
func (f *OptionField) Reset()       { _ = f.Set(f.def) }

func (f *OptionField) SetValue(v any) error {
	s, ok := v.(string)
	if !ok {
		return &ValueError{Key: f.key, Value: v, Reason: "not a string"}
	}
	return f.Set(s)
}

// MultiOptionField holds a subset of a fixed option list. The serialized
// value is the selected subset in option-list order.
type MultiOptionField struct {
	meta
	options   []string
	def       []string
	selected  map[string]bool
	onChanged []func(selected []string)
}

// NewMultiOptionField creates a multi-choice field. def must be a subset
// of options.
func NewMultiOptionField(key, title, help string, options, def []string) *MultiOptionField {
	f := &MultiOptionField{
		meta:    meta{key: key, title: title, help: help, persist: true},
		options: slices.Clone(options),
		def:     slices.Clone(def),
		selected: make(map[string]bool, len(options)),
	}
	for _, opt := range def {
		f.selected[opt] = true
	}
	return f
}

func (f *MultiOptionField) Options() []string { return slices.Clone(f.options) }

// Get returns the selected subset in option-list order.
func (f *MultiOptionField) Get() []string {
	out := make([]string, 0, len(f.selected))
	for _, opt := range f.options {
		if f.selected[opt] {
			out = append(out, opt)
		}
	}
	return out
}

// Set replaces the selection. Unknown options are rejected.
func (f *MultiOptionField) Set(values []string) error {
	for _, v := range values {
		if !slices.Contains(f.options, v) {
			return &ValueError{Key: f.key, Value: v, Reason: "not an available option"}
		}
	}
	clear(f.selected)
	for _, v := range values {
		f.selected[v] = true
	}
	sel := f.Get()
	for _, fn := range f.onChanged {
		fn(sel)
	}
	return nil
}

// SelectAll selects every option.
func (f *MultiOptionField) SelectAll() { _ = f.Set(f.options) }

// SelectNone clears the selection.
func (f *MultiOptionField) SelectNone() { _ = f.Set(nil) }

// OnChanged registers a tracer invoked with the new selection.
func (f *MultiOptionField) OnChanged(fn func(selected []string)) {
	f.onChanged = append(f.onChanged, fn)
}

func (f *MultiOptionField) Value() any   { return f.Get() }
func (f *MultiOptionField) Default() any { return slices.Clone(f.def) }
func (f *MultiOptionField) Reset()       { _ = f.Set(f.def) }

func (f *MultiOptionField) SetValue(v any) error {
	values, err := toStringList(f.key, v)
	if err != nil {
		return err
	}
	return f.Set(values)
}

// StringListField holds an ordered list of strings, one per line in the
// widget layer. File and folder entries use it so multi-selection always
// serializes the same way.
type StringListField struct {
	meta
	def, val  []string
	kind      ListKind
	patterns  []string
	onChanged []func([]string)
}

// ListKind tells the widget layer which browse dialog fits the field.
type ListKind int

const (
	ListPlain ListKind = iota
	ListFiles
	ListFolders
)

// NewStringListField creates a plain string-list field.
func NewStringListField(key, title, help string, def []string) *StringListField {
	return &StringListField{
		meta: meta{key: key, title: title, help: help, persist: true},
		def:  slices.Clone(def),
		val:  slices.Clone(def),
	}
}

// NewFileField creates a string-list field browsed with a file-open
// dialog. patterns are extension filters like ".json"; the first one is
// the preferred extension.
func NewFileField(key, title, help string, def []string, patterns ...string) *StringListField {
	f := NewStringListField(key, title, help, def)
	f.kind = ListFiles
	f.patterns = patterns
	return f
}

// NewFolderField creates a string-list field browsed with a folder dialog.
func NewFolderField(key, title, help string, def []string) *StringListField {
	f := NewStringListField(key, title, help, def)
	f.kind = ListFolders
	return f
}

func (f *StringListField) Kind() ListKind     { return f.kind }
func (f *StringListField) Patterns() []string { return slices.Clone(f.patterns) }

func (f *StringListField) Get() []string { return slices.Clone(f.val) }

// First returns the first entry, or "" when the list is empty. Single-path
// fields read this on the app side.
func (f *StringListField) First() string {
	if len(f.val) == 0 {
		return ""
	}
	return f.val[0]
}

func (f *StringListField) Set(values []string) {
	changed := !slices.Equal(f.val, values)
	f.val = slices.Clone(values)
	if changed {
		for _, fn := range f.onChanged {
			fn(f.Get())
		}
	}
}

// OnChanged registers a tracer invoked with the new list.
func (f *StringListField) OnChanged(fn func([]string)) { f.onChanged = append(f.onChanged, fn) }

func (f *StringListField) Value() any   { return f.Get() }
func (f *StringListField) Default() any { return slices.Clone(f.def) }
func (f *StringListField) Reset()       { f.Set(f.def) }

func (f *StringListField) SetValue(v any) error {
	values, err := toStringList(f.key, v)
	if err != nil {
		return err
	}
	f.Set(values)
	return nil
}

// toStringList coerces a decoded JSON value into a []string. A bare string
// becomes a one-element list.
func toStringList(key string, v any) ([]string, error) {
	switch list := v.(type) {
	case []string:
		return slices.Clone(list), nil
	case string:
		return []string{list}, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, &ValueError{Key: key, Value: item, Reason: "not a string"}
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, &ValueError{Key: key, Value: v, Reason: "not a string list"}
	}
}
