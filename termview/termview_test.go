package termview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/collide"
)

type gridScreen struct {
	w, h  int
	cells [][]rune
	shown int
}

func newGridScreen(w, h int) *gridScreen {
	g := &gridScreen{w: w, h: h}
	g.Clear()
	return g
}

func (g *gridScreen) Clear() {
	g.cells = make([][]rune, g.h)
	for y := range g.cells {
		g.cells[y] = []rune(strings.Repeat(" ", g.w))
	}
}

func (g *gridScreen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		panic("SetContent out of range")
	}
	g.cells[y][x] = r
}

func (g *gridScreen) Size() (int, int) { return g.w, g.h }
func (g *gridScreen) Show()            { g.shown++ }

func (g *gridScreen) row(y int) string { return string(g.cells[y]) }

func (g *gridScreen) count(r rune) int {
	n := 0
	for _, row := range g.cells {
		n += strings.Count(string(row), string(r))
	}
	return n
}

type staticSource struct{ snap *collide.Snapshot }

func (s *staticSource) Snapshot() *collide.Snapshot { return s.snap }

func TestDrawWaiting(t *testing.T) {
	scr := newGridScreen(40, 10)
	NewView(&staticSource{}, collide.Bounds{Width: 100, Height: 100}).Draw(scr)

	if !strings.Contains(scr.row(9), "waiting") {
		t.Errorf("status = %q", scr.row(9))
	}
	if scr.shown != 1 {
		t.Errorf("Show called %d times, want 1", scr.shown)
	}
}

func TestDrawSmallBody(t *testing.T) {
	scr := newGridScreen(40, 11)
	src := &staticSource{snap: &collide.Snapshot{Tick: 7, Bodies: []collide.Body{
		{X: 55, Y: 35, Radius: 2, Mass: 1},
	}}}
	NewView(src, collide.Bounds{Width: 400, Height: 100}).Draw(scr)

	// 40 columns and 10 drawing rows: one cell per 10 world units.
	if scr.cells[3][5] != runeSmall {
		t.Errorf("row 3 = %q, want body at column 5", scr.row(3))
	}
	if scr.count(runeSmall) != 1 {
		t.Errorf("small body drawn %d times", scr.count(runeSmall))
	}
	if !strings.Contains(scr.row(10), "tick 7") || !strings.Contains(scr.row(10), "bodies 1") {
		t.Errorf("status = %q", scr.row(10))
	}
}

func TestDrawTruncatesStatus(t *testing.T) {
	scr := newGridScreen(10, 3)
	src := &staticSource{snap: &collide.Snapshot{Tick: 7, Bodies: []collide.Body{
		{X: 50, Y: 50, Radius: 1, Mass: 1},
	}}}
	NewView(src, collide.Bounds{Width: 100, Height: 100}).Draw(scr)

	if got, want := scr.row(2), " tick 7 | "; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestDrawLargeBody(t *testing.T) {
	scr := newGridScreen(20, 21)
	src := &staticSource{snap: &collide.Snapshot{Bodies: []collide.Body{
		{X: 50, Y: 50, Radius: 20, Mass: 1},
	}}}
	NewView(src, collide.Bounds{Width: 100, Height: 100}).Draw(scr)

	// Radius 4 cells: the disc covers roughly pi*16 cells.
	n := scr.count(runeFill)
	if n < 40 || n > 64 {
		t.Errorf("filled cells = %d, want about 50", n)
	}
	if scr.cells[10][10] != runeFill {
		t.Error("center cell not filled")
	}
	if scr.cells[0][0] != ' ' {
		t.Error("corner cell filled")
	}
}

func TestDrawClipsAtEdges(t *testing.T) {
	scr := newGridScreen(10, 6)
	src := &staticSource{snap: &collide.Snapshot{Bodies: []collide.Body{
		{X: 98, Y: 2, Radius: 30, Mass: 1},
		{X: -5, Y: 120, Radius: 1, Mass: 1},
	}}}
	// Out-of-range writes panic in gridScreen.
	NewView(src, collide.Bounds{Width: 100, Height: 100}).Draw(scr)
	if scr.count(runeFill) == 0 {
		t.Error("clipped body not drawn at all")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
		{"resize", tcell.NewEventResize(80, 24), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quit(tt.ev); got != tt.want {
				t.Errorf("quit = %v, want %v", got, tt.want)
			}
		})
	}
}
