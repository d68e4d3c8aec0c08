package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"formkit/form"
)

// FormView is the two-pane form layout: a navigation pane on the left
// (search box over the page list) and the selected page's entries in a
// scrollable pane on the right. Entries are built once per field; the
// right pane swaps between cached page containers.
type FormView struct {
	registry *form.Registry
	entries  map[string]Entry
	pages    []*container.Scroll
	nav      *widget.List
	search   *widget.Entry
	page     *fyne.Container
	selected int
	object   fyne.CanvasObject
}

// NewFormView builds the view for every group and field in registry.
// The window hosts the browse and generator dialogs of the entries.
func NewFormView(w fyne.Window, registry *form.Registry) *FormView {
	v := &FormView{
		registry: registry,
		entries:  make(map[string]Entry),
	}

	groups := registry.Groups()
	for _, g := range groups {
		items := make([]fyne.CanvasObject, 0, len(g.Fields()))
		for _, f := range g.Fields() {
			e := NewEntry(w, f)
			v.entries[f.Key()] = e
			items = append(items, e.Object())
		}
		v.pages = append(v.pages, container.NewVScroll(container.NewVBox(items...)))
	}

	v.nav = widget.NewList(
		func() int { return len(groups) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(groups[i].Title())
		},
	)
	v.nav.OnSelected = func(i widget.ListItemID) {
		v.selected = i
		v.search.SetText("")
		v.showPage(v.pages[i])
	}

	v.search = widget.NewEntry()
	v.search.SetPlaceHolder("Search fields ...")
	v.search.OnChanged = func(keyword string) {
		if keyword == "" {
			v.showPage(v.pages[v.selected])
			return
		}
		v.showFiltered(keyword)
	}

	v.page = container.NewStack()
	if len(v.pages) > 0 {
		v.page.Objects = []fyne.CanvasObject{v.pages[0]}
		v.nav.Select(0)
	}

	left := container.NewBorder(v.search, nil, nil, nil, v.nav)
	split := container.NewHSplit(left, v.page)
	split.Offset = 0.25
	v.object = split
	return v
}

// Entry returns the entry built for key, or nil if the key is unknown.
func (v *FormView) Entry(key string) Entry {
	return v.entries[key]
}

// SelectPage switches the right pane to the group at index.
func (v *FormView) SelectPage(index int) {
	if index < 0 || index >= len(v.pages) {
		return
	}
	v.nav.Select(index)
}

func (v *FormView) showPage(page *container.Scroll) {
	v.page.Objects = []fyne.CanvasObject{page}
	v.page.Refresh()
}

// showFiltered replaces the right pane with the fields whose titles match
// keyword, across all pages. Entry objects are shared with their home
// page, so the filter view is rebuilt on each keystroke and the home
// pages are restored when the filter clears.
func (v *FormView) showFiltered(keyword string) {
	var items []fyne.CanvasObject
	for _, f := range v.registry.Filter(keyword) {
		if e := v.entries[f.Key()]; e != nil {
			items = append(items, e.Object())
		}
	}
	if len(items) == 0 {
		items = append(items, widget.NewLabel("No matching fields"))
	}
	v.page.Objects = []fyne.CanvasObject{container.NewVScroll(container.NewVBox(items...))}
	v.page.Refresh()
}

// Object returns the renderable two-pane layout.
func (v *FormView) Object() fyne.CanvasObject { return v.object }
