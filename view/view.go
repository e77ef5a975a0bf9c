// Package view holds the mutable pan/zoom state driven by user input and
// hands out immutable snapshots of it to the renderer.
package view

import (
	"sync"

	mandel "github.com/marben/live_mandel"
)

const (
	// PanStep is the pan distance per key press, in screen-scale units.
	PanStep = 0.1
	// ZoomFactor is the scale multiplier per zoom key press.
	ZoomFactor = 1.1
)

// Action is a single navigation input.
type Action byte

const (
	None Action = iota
	Up
	Down
	Left
	Right
	ZoomIn
	ZoomOut
	Reset
	Quit
)

var actionNames = [...]string{
	None:    "none",
	Up:      "up",
	Down:    "down",
	Left:    "left",
	Right:   "right",
	ZoomIn:  "zoom-in",
	ZoomOut: "zoom-out",
	Reset:   "reset",
	Quit:    "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// FromRune decodes the character keys shared by all viewers.
func FromRune(r rune) Action {
	switch r {
	case 'z', 'Z', '+':
		return ZoomIn
	case 'x', 'X', '-':
		return ZoomOut
	case 'r', 'R', '0':
		return Reset
	case 'q', 'Q':
		return Quit
	case 'w', 'k':
		return Up
	case 's', 'j':
		return Down
	case 'a', 'h':
		return Left
	case 'd', 'l':
		return Right
	}
	return None
}

// Controller owns the current viewport. It is safe for concurrent use.
type Controller struct {
	m    sync.Mutex
	home mandel.Viewport
	cur  mandel.Viewport
	gen  uint64
}

// NewController starts at home, which Reset returns to.
func NewController(home mandel.Viewport) *Controller {
	return &Controller{home: home, cur: home}
}

// Snapshot returns a copy of the current viewport and its generation.
// The generation grows by one with every change.
func (c *Controller) Snapshot() (mandel.Viewport, uint64) {
	c.m.Lock()
	defer c.m.Unlock()
	return c.cur, c.gen
}

// Viewport returns a copy of the current viewport.
func (c *Controller) Viewport() mandel.Viewport {
	v, _ := c.Snapshot()
	return v
}

// Apply performs a. Pans move by PanStep/scale so that on-screen speed does
// not depend on zoom. It reports whether the viewport changed.
func (c *Controller) Apply(a Action) bool {
	c.m.Lock()
	defer c.m.Unlock()

	v := c.cur
	step := PanStep / v.Scale
	switch a {
	case Up:
		v.OffsetY -= step
	case Down:
		v.OffsetY += step
	case Left:
		v.OffsetX -= step
	case Right:
		v.OffsetX += step
	case ZoomIn:
		v.Scale *= ZoomFactor
	case ZoomOut:
		v.Scale /= ZoomFactor
	case Reset:
		v = c.home
	default:
		return false
	}
	if v == c.cur {
		return false
	}
	c.cur = v
	c.gen++
	return true
}
