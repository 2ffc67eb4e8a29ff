// Package termview draws collide snapshots in a terminal using tcell.
//
// World coordinates are scaled to the screen independently on each axis, so
// bodies appear as ellipses whose shape follows the terminal's cell aspect.
// The bottom row is kept for a status line.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/collide"
)

// Source supplies the latest snapshot. *collide.Coordinator satisfies it.
type Source interface {
	Snapshot() *collide.Snapshot
}

// Screen is the part of tcell.Screen a View draws on.
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
	Show()
}

const (
	runeFill  = '█'
	runeSmall = '●'
)

// DefaultColors colors bodies by index, wrapping around.
var DefaultColors = []tcell.Color{
	tcell.ColorRed,
	tcell.ColorYellow,
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorPurple,
	tcell.ColorTeal,
}

// View renders a Source into a terminal screen.
type View struct {
	src    Source
	bounds collide.Bounds
	styles []tcell.Style
	status tcell.Style
}

// NewView creates a view of src for a world of the given bounds.
func NewView(src Source, bounds collide.Bounds) *View {
	styles := make([]tcell.Style, len(DefaultColors))
	for i, c := range DefaultColors {
		styles[i] = tcell.StyleDefault.Foreground(c)
	}
	return &View{
		src:    src,
		bounds: bounds,
		styles: styles,
		status: tcell.StyleDefault.Reverse(true),
	}
}

// Draw paints the latest snapshot and the status line, then shows the screen.
func (v *View) Draw(s Screen) {
	s.Clear()
	w, h := s.Size()
	snap := v.src.Snapshot()
	if h > 1 && w > 0 && snap != nil {
		sx := float64(w) / v.bounds.Width
		sy := float64(h-1) / v.bounds.Height
		for i := range snap.Bodies {
			v.drawBody(s, &snap.Bodies[i], v.styles[i%len(v.styles)], sx, sy, w, h-1)
		}
	}
	if h > 0 {
		drawText(s, 0, h-1, w, statusLine(snap), v.status)
	}
	s.Show()
}

func (v *View) drawBody(s Screen, b *collide.Body, style tcell.Style, sx, sy float64, w, h int) {
	cx, cy := b.X*sx, b.Y*sy
	rx, ry := b.Radius*sx, b.Radius*sy

	if rx < 1 && ry < 1 {
		x, y := int(cx), int(cy)
		if x >= 0 && x < w && y >= 0 && y < h {
			s.SetContent(x, y, runeSmall, nil, style)
		}
		return
	}

	x0, x1 := max(int(cx-rx), 0), min(int(cx+rx), w-1)
	y0, y1 := max(int(cy-ry), 0), min(int(cy+ry), h-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			dy := (float64(y) + 0.5 - cy) / ry
			if dx*dx+dy*dy <= 1 {
				s.SetContent(x, y, runeFill, nil, style)
			}
		}
	}
}

func statusLine(snap *collide.Snapshot) string {
	if snap == nil {
		return " waiting for simulation | q to quit"
	}
	return fmt.Sprintf(" tick %d | bodies %d | q to quit", snap.Tick, len(snap.Bodies))
}

func drawText(s Screen, x, y, w int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= w {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < w; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

// Run redraws v on screen fps times per second until ctx is done or the user
// presses q, Escape or Ctrl-C. It does not finalize the screen.
func Run(ctx context.Context, screen tcell.Screen, v *View, fps int) error {
	if fps <= 0 {
		fps = 60
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if quit(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case <-ticker.C:
			v.Draw(screen)
		}
	}
}

func quit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	return key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
		(key.Key() == tcell.KeyRune && key.Rune() == 'q')
}
