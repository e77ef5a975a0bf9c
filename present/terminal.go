package present

import (
	"github.com/gdamore/tcell/v2"

	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/view"
)

// upperHalf paints the top pixel of a cell as foreground, the bottom one as background.
const upperHalf = '▀'

// Terminal blits frames onto a tcell screen at two pixels per cell.
// The bottom row of the screen is kept for a status line.
type Terminal struct {
	screen tcell.Screen
}

func NewTerminal(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Dims is the pixel grid that fits the screen.
func (t *Terminal) Dims() mandel.Dims {
	cols, rows := t.screen.Size()
	if rows <= 1 || cols <= 0 {
		return mandel.Dims{}
	}
	return mandel.Dims{Width: cols, Height: (rows - 1) * 2}
}

// Draw blits f and the status line, then shows the screen.
func (t *Terminal) Draw(f *mandel.Frame, status string) {
	for cy := 0; cy*2 < f.Height; cy++ {
		for x := 0; x < f.Width; x++ {
			top := f.At(x, cy*2)
			bottom := top
			if cy*2+1 < f.Height {
				bottom = f.At(x, cy*2+1)
			}
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			t.screen.SetContent(x, cy, upperHalf, nil, style)
		}
	}

	cols, rows := t.screen.Size()
	line := []rune(status)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		t.screen.SetContent(x, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}

func cellColor(c mandel.Color) tcell.Color {
	n := NRGBA(c)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// Action maps a key event to a navigation action.
func Action(ev *tcell.EventKey) view.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return view.Up
	case tcell.KeyDown:
		return view.Down
	case tcell.KeyLeft:
		return view.Left
	case tcell.KeyRight:
		return view.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return view.Quit
	case tcell.KeyRune:
		return view.FromRune(ev.Rune())
	}
	return view.None
}
