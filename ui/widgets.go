// Package ui renders formkit forms with Fyne: entry widgets bound to field
// descriptors, a two-pane form view, action bars, progress indicators driven
// by the task queue, menus, and dialog helpers.
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StrengthIndicator displays a password strength score as a circular arc,
// colored from red (weak) to green (strong).
// Uses canvas.Arc for efficient GPU-accelerated rendering.
type StrengthIndicator struct {
	widget.BaseWidget
	strength int  // 0-4 (zxcvbn score)
	visible  bool // whether to show the indicator
}

// NewStrengthIndicator creates a new password strength indicator.
func NewStrengthIndicator() *StrengthIndicator {
	s := &StrengthIndicator{}
	s.ExtendBaseWidget(s)
	return s
}

// SetStrength updates the strength value (0-4).
func (s *StrengthIndicator) SetStrength(strength int) {
	s.strength = strength
	s.Refresh()
}

// SetVisible sets whether the indicator should be visible.
func (s *StrengthIndicator) SetVisible(visible bool) {
	s.visible = visible
	s.Refresh()
}

// MinSize returns the minimum size of the indicator.
func (s *StrengthIndicator) MinSize() fyne.Size {
	return fyne.NewSize(24, 24)
}

// CreateRenderer creates the renderer for the widget.
func (s *StrengthIndicator) CreateRenderer() fyne.WidgetRenderer {
	// CutoutRatio 0.6 creates a ring appearance; StartAngle 0 is the
	// top (12 o'clock) in Fyne's coordinate system.
	arc := canvas.NewArc(0, 0, 0.6, color.Transparent)
	arc.SetMinSize(fyne.NewSize(20, 20))

	r := &strengthRenderer{
		indicator: s,
		arc:       arc,
	}
	r.updateArc()
	return r
}

type strengthRenderer struct {
	indicator *StrengthIndicator
	arc       *canvas.Arc
}

func (r *strengthRenderer) Layout(size fyne.Size) {
	// Center the arc in the widget area
	arcSize := fyne.NewSize(20, 20)
	offset := fyne.NewPos(
		(size.Width-arcSize.Width)/2,
		(size.Height-arcSize.Height)/2,
	)
	r.arc.Move(offset)
	r.arc.Resize(arcSize)
}

func (r *strengthRenderer) MinSize() fyne.Size {
	return r.indicator.MinSize()
}

func (r *strengthRenderer) updateArc() {
	if !r.indicator.visible {
		r.arc.FillColor = color.Transparent
		return
	}

	// Red (weak) to green (strong):
	// strength=0: R=200(0xc8), G=76(0x4c) - red
	// strength=4: R=76, G=200 - green
	col := color.RGBA{
		R: uint8(0xc8 - 31*r.indicator.strength),
		G: uint8(0x4c + 31*r.indicator.strength),
		B: 0x4b,
		A: 0xff,
	}

	// 72° of arc per score step; a full score closes the circle.
	r.arc.StartAngle = 0
	r.arc.EndAngle = float32(72 * (r.indicator.strength + 1))
	r.arc.FillColor = col
}

func (r *strengthRenderer) Refresh() {
	r.updateArc()
	canvas.Refresh(r.arc)
}

func (r *strengthRenderer) Destroy() {}

func (r *strengthRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.arc}
}

// PasswordText is an Entry widget that can toggle between password and
// plain text mode.
type PasswordText struct {
	widget.Entry
	hidden bool
}

// NewPasswordText creates a new password entry with echo disabled.
func NewPasswordText() *PasswordText {
	e := &PasswordText{hidden: true}
	e.ExtendBaseWidget(e)
	e.Password = true
	return e
}

// SetHidden sets whether the password is hidden.
func (e *PasswordText) SetHidden(hidden bool) {
	e.hidden = hidden
	e.Password = hidden
	e.Refresh()
}

// IsHidden returns whether the password is currently hidden.
func (e *PasswordText) IsHidden() bool {
	return e.hidden
}

// TooltipButton is a button with a tooltip that shows on hover. Action
// bars use it to surface the help text of the action.
type TooltipButton struct {
	widget.Button
	tooltip string
	popup   *widget.PopUp
}

var _ desktop.Hoverable = (*TooltipButton)(nil)

// NewTooltipButton creates a new button with a tooltip.
func NewTooltipButton(label string, tooltip string, onTapped func()) *TooltipButton {
	b := &TooltipButton{tooltip: tooltip}
	b.Text = label
	b.OnTapped = onTapped
	b.ExtendBaseWidget(b)
	return b
}

// SetTooltip updates the tooltip text.
func (b *TooltipButton) SetTooltip(tooltip string) {
	b.tooltip = tooltip
}

// MouseIn is called when the mouse enters the button - shows tooltip.
func (b *TooltipButton) MouseIn(e *desktop.MouseEvent) {
	if b.tooltip == "" || b.Disabled() {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(b)
	if c == nil {
		return
	}
	text := canvas.NewText(b.tooltip, theme.Color(theme.ColorNameForeground))
	text.TextSize = theme.CaptionTextSize()
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameOverlayBackground))
	content := container.NewStack(bg, container.NewPadded(text))
	b.popup = widget.NewPopUp(content, c)
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(b)
	b.popup.ShowAtPosition(fyne.NewPos(pos.X, pos.Y+b.Size().Height+2))
}

// MouseMoved is called when the mouse moves within the button.
func (b *TooltipButton) MouseMoved(e *desktop.MouseEvent) {}

// MouseOut is called when the mouse leaves the button - hides tooltip.
func (b *TooltipButton) MouseOut() {
	if b.popup != nil {
		b.popup.Hide()
		b.popup = nil
	}
}
