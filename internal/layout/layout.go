// Package layout defines the calculator button geometry and hit-testing.
package layout

import (
	"image"
	"math"
)

// Category describes what kind of input a button produces.
type Category string

const (
	// CategoryDigit covers 0-9 and the decimal point.
	CategoryDigit Category = "digit"
	// CategoryOperator covers + - × ÷.
	CategoryOperator Category = "operator"
	// CategoryCommand covers C, del, ± and %.
	CategoryCommand Category = "command"
	// CategoryEquals is the equals button.
	CategoryEquals Category = "equals"
)

// Panel geometry, in pixels on the display. The calculator occupies a fixed
// width panel anchored to the right edge of the frame.
const (
	PanelWidth   = 400
	ButtonWidth  = 80
	ButtonHeight = 60
	ButtonMargin = 8
	GridTop      = 200
	DisplayTop   = 50
	DisplayBot   = 150
	DeleteTop    = 158
	DeleteHeight = 34
)

// Button is an immutable hit-region with its identity and label.
type Button struct {
	ID       string
	Label    string
	Category Category
	Rect     image.Rectangle
}

// Center returns the center point of the button's rectangle.
func (b *Button) Center() image.Point {
	return image.Pt((b.Rect.Min.X+b.Rect.Max.X)/2, (b.Rect.Min.Y+b.Rect.Max.Y)/2)
}

// CenterDist returns the distance from a point to the button center.
func (b *Button) CenterDist(pt image.Point) float64 {
	c := b.Center()
	dx := float64(pt.X - c.X)
	dy := float64(pt.Y - c.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// grid is the row-major button arrangement. The zero button spans two cells;
// del lives in its own strip under the display, outside the grid.
var grid = [5][4]string{
	{"C", "±", "%", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", "", ".", "="},
}

// Layout holds the full set of buttons for a given display size.
// It is built once at startup (or on resize) and never mutated.
type Layout struct {
	width   int
	height  int
	buttons []Button
}

// New computes the button layout for a display of the given dimensions.
func New(width, height int) *Layout {
	l := &Layout{width: width, height: height}

	panelX := width - PanelWidth
	startX := panelX + 20

	for row := 0; row < len(grid); row++ {
		for col := 0; col < len(grid[row]); col++ {
			id := grid[row][col]
			if id == "" {
				continue // cell consumed by the widened zero
			}

			x := startX + col*(ButtonWidth+ButtonMargin)
			y := GridTop + row*(ButtonHeight+ButtonMargin)

			w := ButtonWidth
			if id == "0" {
				w = ButtonWidth*2 + ButtonMargin
			}

			l.buttons = append(l.buttons, Button{
				ID:       id,
				Label:    id,
				Category: categoryOf(id),
				Rect:     image.Rect(x, y, x+w, y+ButtonHeight),
			})
		}
	}

	// Backspace strip under the display, right-aligned with the grid.
	delX := startX + 3*(ButtonWidth+ButtonMargin)
	l.buttons = append(l.buttons, Button{
		ID:       "del",
		Label:    "del",
		Category: CategoryCommand,
		Rect:     image.Rect(delX, DeleteTop, delX+ButtonWidth, DeleteTop+DeleteHeight),
	})

	return l
}

// HitTest returns the button whose rectangle contains the point, or nil when
// the point falls in a gutter or outside the panel. Rectangles do not
// overlap, so the first hit is the only hit.
func (l *Layout) HitTest(pt image.Point) *Button {
	for i := range l.buttons {
		if pt.In(l.buttons[i].Rect) {
			return &l.buttons[i]
		}
	}
	return nil
}

// Lookup returns the button with the given ID, or nil.
func (l *Layout) Lookup(id string) *Button {
	for i := range l.buttons {
		if l.buttons[i].ID == id {
			return &l.buttons[i]
		}
	}
	return nil
}

// Buttons returns all buttons in the layout.
func (l *Layout) Buttons() []Button {
	return l.buttons
}

// Width returns the display width the layout was built for.
func (l *Layout) Width() int { return l.width }

// Height returns the display height the layout was built for.
func (l *Layout) Height() int { return l.height }

func categoryOf(id string) Category {
	switch id {
	case "+", "-", "×", "÷":
		return CategoryOperator
	case "=":
		return CategoryEquals
	case "C", "±", "%", "del":
		return CategoryCommand
	default:
		return CategoryDigit
	}
}
