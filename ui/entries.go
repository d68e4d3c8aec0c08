package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Picocrypt/zxcvbn-go"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"formkit/form"
	"formkit/internal/util"
)

// Entry binds one field descriptor to its widgets. Widget input is
// validated at this boundary; malformed or out-of-range text never
// reaches the field. Field changes from the model side (presets, reset)
// flow back into the widgets through the field's change tracer.
type Entry interface {
	Field() form.Field
	Object() fyne.CanvasObject
}

// NewEntry creates the widget bundle matching the field's concrete type.
func NewEntry(w fyne.Window, f form.Field) Entry {
	switch field := f.(type) {
	case *form.IntField:
		return NewIntEntry(field)
	case *form.FloatField:
		return NewFloatEntry(field)
	case *form.BoolField:
		return NewBoolEntry(field)
	case *form.OptionField:
		return NewOptionEntry(field)
	case *form.MultiOptionField:
		return NewMultiOptionEntry(field)
	case *form.StringListField:
		return NewListEntry(w, field)
	case *form.StringField:
		if field.IsSecret() {
			return NewPasswordEntry(w, field)
		}
		return NewTextEntry(field)
	default:
		return newStaticEntry(f)
	}
}

// labeled stacks the field title, the control, and the optional help
// caption into one block.
func labeled(f form.Field, control fyne.CanvasObject) fyne.CanvasObject {
	title := widget.NewLabel(f.Title())
	title.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{title, control}
	if f.Help() != "" {
		help := widget.NewLabel(f.Help())
		help.Wrapping = fyne.TextWrapWord
		help.TextStyle = fyne.TextStyle{Italic: true}
		items = append(items, help)
	}
	return container.NewVBox(items...)
}

// staticEntry renders a field type this package has no editor for.
type staticEntry struct {
	field  form.Field
	object fyne.CanvasObject
}

func newStaticEntry(f form.Field) *staticEntry {
	return &staticEntry{
		field:  f,
		object: labeled(f, widget.NewLabel(fmt.Sprint(f.Value()))),
	}
}

func (e *staticEntry) Field() form.Field         { return e.field }
func (e *staticEntry) Object() fyne.CanvasObject { return e.object }

// IntEntry is a validated integer input. Bounded fields get a slider
// under the text box; the two stay in sync through the field.
type IntEntry struct {
	field   *form.IntField
	entry   *widget.Entry
	slider  *widget.Slider
	object  fyne.CanvasObject
	syncing bool
}

// NewIntEntry creates an integer entry for f.
func NewIntEntry(f *form.IntField) *IntEntry {
	e := &IntEntry{field: f}

	e.entry = widget.NewEntry()
	e.entry.SetText(strconv.Itoa(f.Get()))
	e.entry.Validator = func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("not an integer")
		}
		if n < f.Min() || n > f.Max() {
			return fmt.Errorf("outside [%d, %d]", f.Min(), f.Max())
		}
		return nil
	}
	e.entry.OnChanged = func(s string) {
		if e.syncing {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return
		}
		_ = f.Set(n)
	}

	control := fyne.CanvasObject(e.entry)
	if f.Bounded() {
		e.slider = widget.NewSlider(float64(f.Min()), float64(f.Max()))
		e.slider.Step = float64(f.Step())
		e.slider.Value = float64(f.Get())
		e.slider.OnChanged = func(v float64) {
			if e.syncing {
				return
			}
			_ = f.Set(int(v))
		}
		control = container.NewVBox(e.entry, e.slider)
	}

	f.OnChanged(func(v int) {
		e.syncing = true
		e.entry.SetText(strconv.Itoa(v))
		if e.slider != nil {
			e.slider.SetValue(float64(v))
		}
		e.syncing = false
	})

	e.object = labeled(f, control)
	return e
}

func (e *IntEntry) Field() form.Field         { return e.field }
func (e *IntEntry) Object() fyne.CanvasObject { return e.object }

// FloatEntry is a validated floating-point input, sliding when bounded.
type FloatEntry struct {
	field   *form.FloatField
	entry   *widget.Entry
	slider  *widget.Slider
	object  fyne.CanvasObject
	syncing bool
}

// NewFloatEntry creates a float entry for f.
func NewFloatEntry(f *form.FloatField) *FloatEntry {
	e := &FloatEntry{field: f}
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', f.Precision(), 64)
	}

	e.entry = widget.NewEntry()
	e.entry.SetText(format(f.Get()))
	e.entry.Validator = func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if v < f.Min() || v > f.Max() {
			return fmt.Errorf("outside [%g, %g]", f.Min(), f.Max())
		}
		return nil
	}
	e.entry.OnChanged = func(s string) {
		if e.syncing {
			return
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return
		}
		_ = f.Set(v)
	}

	control := fyne.CanvasObject(e.entry)
	if f.Bounded() {
		e.slider = widget.NewSlider(f.Min(), f.Max())
		e.slider.Step = f.Step()
		e.slider.Value = f.Get()
		e.slider.OnChanged = func(v float64) {
			if e.syncing {
				return
			}
			_ = f.Set(util.RoundTo(v, f.Precision()))
		}
		control = container.NewVBox(e.entry, e.slider)
	}

	f.OnChanged(func(v float64) {
		e.syncing = true
		e.entry.SetText(format(v))
		if e.slider != nil {
			e.slider.SetValue(v)
		}
		e.syncing = false
	})

	e.object = labeled(f, control)
	return e
}

func (e *FloatEntry) Field() form.Field         { return e.field }
func (e *FloatEntry) Object() fyne.CanvasObject { return e.object }

// BoolEntry is a checkbox.
type BoolEntry struct {
	field   *form.BoolField
	check   *widget.Check
	object  fyne.CanvasObject
	syncing bool
}

// NewBoolEntry creates a checkbox entry for f.
func NewBoolEntry(f *form.BoolField) *BoolEntry {
	e := &BoolEntry{field: f}
	e.check = widget.NewCheck(f.Title(), func(checked bool) {
		if e.syncing {
			return
		}
		f.Set(checked)
	})
	e.check.SetChecked(f.Get())

	f.OnChanged(func(v bool) {
		e.syncing = true
		e.check.SetChecked(v)
		e.syncing = false
	})

	// The checkbox carries its own label; only the help goes below it.
	items := []fyne.CanvasObject{e.check}
	if f.Help() != "" {
		help := widget.NewLabel(f.Help())
		help.Wrapping = fyne.TextWrapWord
		help.TextStyle = fyne.TextStyle{Italic: true}
		items = append(items, help)
	}
	e.object = container.NewVBox(items...)
	return e
}

func (e *BoolEntry) Field() form.Field         { return e.field }
func (e *BoolEntry) Object() fyne.CanvasObject { return e.object }

// OptionEntry is a drop-down over a fixed option list.
type OptionEntry struct {
	field   *form.OptionField
	sel     *widget.Select
	object  fyne.CanvasObject
	syncing bool
}

// NewOptionEntry creates a drop-down entry for f.
func NewOptionEntry(f *form.OptionField) *OptionEntry {
	e := &OptionEntry{field: f}
	e.sel = widget.NewSelect(f.Options(), func(v string) {
		if e.syncing {
			return
		}
		_ = f.Set(v)
	})
	e.sel.SetSelected(f.Get())

	f.OnChanged(func(v string, _ int) {
		e.syncing = true
		e.sel.SetSelected(v)
		e.syncing = false
	})

	e.object = labeled(f, e.sel)
	return e
}

func (e *OptionEntry) Field() form.Field         { return e.field }
func (e *OptionEntry) Object() fyne.CanvasObject { return e.object }

// MultiOptionEntry is a check group over a fixed option list, with
// select-all / select-none shortcuts.
type MultiOptionEntry struct {
	field   *form.MultiOptionField
	group   *widget.CheckGroup
	object  fyne.CanvasObject
	syncing bool
}

// NewMultiOptionEntry creates a check-group entry for f.
func NewMultiOptionEntry(f *form.MultiOptionField) *MultiOptionEntry {
	e := &MultiOptionEntry{field: f}
	e.group = widget.NewCheckGroup(f.Options(), func(selected []string) {
		if e.syncing {
			return
		}
		_ = f.Set(selected)
	})
	e.group.SetSelected(f.Get())

	f.OnChanged(func(selected []string) {
		e.syncing = true
		e.group.SetSelected(selected)
		e.syncing = false
	})

	allBtn := widget.NewButton("All", f.SelectAll)
	noneBtn := widget.NewButton("None", f.SelectNone)
	control := container.NewVBox(
		container.NewGridWithColumns(2, allBtn, noneBtn),
		e.group,
	)

	e.object = labeled(f, control)
	return e
}

func (e *MultiOptionEntry) Field() form.Field         { return e.field }
func (e *MultiOptionEntry) Object() fyne.CanvasObject { return e.object }

// TextEntry is a single- or multi-line text input.
type TextEntry struct {
	field   *form.StringField
	entry   *widget.Entry
	object  fyne.CanvasObject
	syncing bool
}

// NewTextEntry creates a text entry for f.
func NewTextEntry(f *form.StringField) *TextEntry {
	e := &TextEntry{field: f}
	if f.IsMultiline() {
		e.entry = widget.NewMultiLineEntry()
		e.entry.Wrapping = fyne.TextWrapWord
		e.entry.SetMinRowsVisible(4)
	} else {
		e.entry = widget.NewEntry()
	}
	e.entry.SetText(f.Get())
	e.entry.OnChanged = func(s string) {
		if e.syncing {
			return
		}
		f.Set(s)
	}

	f.OnChanged(func(v string) {
		e.syncing = true
		e.entry.SetText(v)
		e.syncing = false
	})

	e.object = labeled(f, e.entry)
	return e
}

func (e *TextEntry) Field() form.Field         { return e.field }
func (e *TextEntry) Object() fyne.CanvasObject { return e.object }

// PasswordEntry is a secret text input with echo disabled, a zxcvbn
// strength arc, and show/clear/create actions.
type PasswordEntry struct {
	field     *form.StringField
	entry     *PasswordText
	indicator *StrengthIndicator
	showBtn   *widget.Button
	object    fyne.CanvasObject
	syncing   bool
}

// NewPasswordEntry creates a password entry for f. The window hosts the
// generator dialog behind the Create button.
func NewPasswordEntry(w fyne.Window, f *form.StringField) *PasswordEntry {
	e := &PasswordEntry{field: f}

	e.entry = NewPasswordText()
	e.entry.SetText(f.Get())
	e.entry.OnChanged = func(s string) {
		if !e.syncing {
			f.Set(s)
		}
		e.updateStrength(s)
	}

	e.indicator = NewStrengthIndicator()
	e.updateStrength(f.Get())

	e.showBtn = widget.NewButton("Show", func() {
		hidden := !e.entry.IsHidden()
		e.entry.SetHidden(hidden)
		if hidden {
			e.showBtn.SetText("Show")
		} else {
			e.showBtn.SetText("Hide")
		}
	})
	clearBtn := widget.NewButton("Clear", func() {
		e.entry.SetText("")
	})
	createBtn := widget.NewButton("Create", func() {
		showPassgenDialog(w, func(password string) {
			e.entry.SetText(password)
		})
	})

	control := container.NewVBox(
		container.NewGridWithColumns(3, e.showBtn, clearBtn, createBtn),
		container.NewBorder(nil, nil, nil, e.indicator, e.entry),
	)
	e.object = labeled(f, control)

	f.OnChanged(func(v string) {
		e.syncing = true
		e.entry.SetText(v)
		e.syncing = false
	})
	return e
}

func (e *PasswordEntry) updateStrength(password string) {
	e.indicator.SetStrength(zxcvbn.PasswordStrength(password, nil).Score)
	e.indicator.SetVisible(password != "")
}

func (e *PasswordEntry) Field() form.Field         { return e.field }
func (e *PasswordEntry) Object() fyne.CanvasObject { return e.object }

// ListEntry is a one-path-per-line input for string-list fields, with a
// browse button matching the field's list kind.
type ListEntry struct {
	field   *form.StringListField
	entry   *widget.Entry
	object  fyne.CanvasObject
	syncing bool
}

// NewListEntry creates a list entry for f. The window hosts the browse
// dialog for file and folder fields.
func NewListEntry(w fyne.Window, f *form.StringListField) *ListEntry {
	e := &ListEntry{field: f}

	e.entry = widget.NewMultiLineEntry()
	e.entry.SetMinRowsVisible(3)
	e.entry.SetText(strings.Join(f.Get(), "\n"))
	e.entry.OnChanged = func(s string) {
		if e.syncing {
			return
		}
		f.Set(splitLines(s))
	}

	f.OnChanged(func(v []string) {
		e.syncing = true
		e.entry.SetText(strings.Join(v, "\n"))
		e.syncing = false
	})

	control := fyne.CanvasObject(e.entry)
	switch f.Kind() {
	case form.ListFiles:
		browse := widget.NewButton("Browse ...", func() {
			open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
				if err != nil || reader == nil {
					return
				}
				reader.Close()
				e.appendPath(reader.URI().Path())
			}, w)
			if patterns := f.Patterns(); len(patterns) > 0 {
				open.SetFilter(storage.NewExtensionFileFilter(patterns))
			}
			open.Show()
		})
		control = container.NewBorder(nil, browse, nil, nil, e.entry)
	case form.ListFolders:
		browse := widget.NewButton("Browse ...", func() {
			dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
				if err != nil || list == nil {
					return
				}
				e.appendPath(list.Path())
			}, w)
		})
		control = container.NewBorder(nil, browse, nil, nil, e.entry)
	}

	e.object = labeled(f, control)
	return e
}

func (e *ListEntry) appendPath(path string) {
	values := append(e.field.Get(), path)
	e.field.Set(values)
}

func (e *ListEntry) Field() form.Field         { return e.field }
func (e *ListEntry) Object() fyne.CanvasObject { return e.object }

// splitLines parses the one-path-per-line convention, dropping blanks.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
