// Package ebitenview draws collide snapshots in an Ebitengine window.
//
// The world is drawn 1:1 in logical pixels, so a Viewer's layout is the world
// size. Bodies briefly flash toward white when their velocity changes.
package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/collide"
	"github.com/tanema/gween/ease"
)

// Source supplies the latest snapshot. *collide.Coordinator satisfies it.
type Source interface {
	Snapshot() *collide.Snapshot
}

// hudInterval is how often the HUD text is refreshed, in seconds.
const hudInterval = 0.5

// Viewer is an ebiten.Game that draws whatever snapshot its Source holds.
// It runs at ebiten's tick rate, independent of the simulation tick rate, so
// the same snapshot may be drawn several times or a snapshot may be skipped.
type Viewer struct {
	src     Source
	cfg     RunConfig
	flashes *flashes

	hudElapsed float64
	hudText    string
}

// NewViewer creates a viewer for src. Unset RunConfig fields take defaults.
func NewViewer(src Source, cfg RunConfig) *Viewer {
	cfg = cfg.withDefaults()
	return &Viewer{
		src:     src,
		cfg:     cfg,
		flashes: newFlashes(cfg.FlashSeconds, cfg.FlashEase),
	}
}

// Update advances flashes and the HUD. Escape ends the game loop.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	snap := v.src.Snapshot()
	v.flashes.observe(snap)
	v.flashes.update(dt)

	v.hudElapsed += float64(dt)
	if v.hudElapsed >= hudInterval || v.hudText == "" {
		v.hudElapsed = 0
		v.hudText = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), snap)
	}
	return nil
}

// Draw paints the snapshot onto screen.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.cfg.Background.ToRGBA())

	snap := v.src.Snapshot()
	if snap != nil {
		for i := range snap.Bodies {
			b := &snap.Bodies[i]
			c := v.bodyColor(i)
			vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), float32(b.Radius), c.ToRGBA(), true)
			if v.cfg.ShowVelocity {
				vector.StrokeLine(screen,
					float32(b.X), float32(b.Y),
					float32(b.X+b.VX*velocityScale), float32(b.Y+b.VY*velocityScale),
					1, ColorWhite.ToRGBA(), true)
			}
		}
	}

	if v.cfg.ShowHUD {
		ebitenutil.DebugPrint(screen, v.hudText)
	}
}

// Layout keeps the logical screen at the world size.
func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.cfg.Width, v.cfg.Height
}

// velocityScale stretches velocity vectors so a tick's motion is visible.
const velocityScale = 4

func (v *Viewer) bodyColor(i int) Color {
	base := v.cfg.Palette[i%len(v.cfg.Palette)]
	return base.Lerp(ColorWhite, v.flashes.level(i))
}

func hudText(fps, tps float64, snap *collide.Snapshot) string {
	if snap == nil {
		return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nwaiting for simulation", fps, tps)
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nTick: %d\nBodies: %d", fps, tps, snap.Tick, len(snap.Bodies))
}

// RunConfig configures Run and NewViewer.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	Background Color
	Palette    []Color

	// ShowHUD prints FPS, TPS, tick and body count in the top-left corner.
	ShowHUD bool
	// ShowVelocity draws each body's velocity vector.
	ShowVelocity bool

	// FlashSeconds is how long a body stays highlighted after a contact.
	FlashSeconds float32
	// FlashEase shapes the highlight fade.
	FlashEase ease.TweenFunc
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "collide"
	}
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Background == (Color{}) {
		c.Background = DefaultBackground
	}
	if len(c.Palette) == 0 {
		c.Palette = DefaultPalette
	}
	if c.FlashSeconds <= 0 {
		c.FlashSeconds = 0.25
	}
	if c.FlashEase == nil {
		c.FlashEase = ease.OutQuad
	}
	return c
}

// Run opens a window sized to the world and draws src until the window is
// closed or Escape is pressed.
func Run(src Source, cfg RunConfig) error {
	v := NewViewer(src, cfg)
	ebiten.SetWindowTitle(v.cfg.Title)
	ebiten.SetWindowSize(v.cfg.Width, v.cfg.Height)
	return ebiten.RunGame(v)
}
