package scenes

import (
	"fmt"
	"image/color"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/fonts"
	"github.com/automoto/keyrunner/level"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font"
)

// hudLine is the status text shown across the top of the screen
func hudLine(o *level.Orchestrator) string {
	lvl := o.Level()
	name := lvl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", lvl.Number)
	}
	return fmt.Sprintf("%s   Score %d   Keys %d/%d", name, o.Score(), o.KeysCollected(), o.KeysRequired())
}

// DrawHUD renders the status bar: level, score, keys and lives
func DrawHUD(screen *ebiten.Image, o *level.Orchestrator) {
	width := float32(screen.Bounds().Dx())
	vector.FillRect(screen, 0, 0, width, float32(cfg.UI.HUDHeight), cfg.UI.HUDColor, false)

	clr := cfg.UI.HUDTextColor
	if o.ExitUnlocked() {
		clr = cfg.UI.KeyDoneColor
	}
	face := fonts.HUD.Get()
	text.Draw(screen, hudLine(o), face, 10, baseline(face, cfg.UI.HUDHeight), clr)

	// Lives as squares on the right
	for i := 0; i < o.Lives(); i++ {
		x := width - float32(i+1)*18 - 6
		vector.FillRect(screen, x, 7, 14, 14, cfg.UI.LifeColor, false)
	}
}

// baseline vertically centres a line of text inside a bar of the given height
func baseline(face font.Face, height float64) int {
	m := face.Metrics()
	textHeight := (m.Ascent + m.Descent).Ceil()
	return (int(height)-textHeight)/2 + m.Ascent.Ceil()
}

// Banner is a line of large text that fades out
type Banner struct {
	Text  string
	tween *gween.Tween
	alpha float32
}

func (b *Banner) Show(msg string) {
	b.Text = msg
	b.alpha = 1
	b.tween = gween.New(1, 0, cfg.UI.BannerSeconds, ease.InQuad)
}

func (b *Banner) Update(dt float64) {
	if b.tween == nil {
		return
	}
	alpha, done := b.tween.Update(float32(dt))
	b.alpha = alpha
	if done {
		b.tween = nil
		b.alpha = 0
	}
}

func (b *Banner) Visible() bool {
	return b.alpha > 0
}

func (b *Banner) Draw(screen *ebiten.Image) {
	if !b.Visible() {
		return
	}
	face := fonts.Banner.Get()
	bounds := text.BoundString(face, b.Text)
	x := (screen.Bounds().Dx() - bounds.Dx()) / 2
	y := screen.Bounds().Dy() / 3

	base := cfg.UI.BannerColor
	a := uint8(float32(base.A) * b.alpha)
	text.Draw(screen, b.Text, face, x+2, y+2, color.NRGBA{A: a})
	text.Draw(screen, b.Text, face, x, y, color.NRGBA{R: base.R, G: base.G, B: base.B, A: a})
}

// drawCentered draws a line of text centred horizontally at y
func drawCentered(screen *ebiten.Image, msg string, face font.Face, y int, clr color.Color) {
	bounds := text.BoundString(face, msg)
	x := (screen.Bounds().Dx() - bounds.Dx()) / 2
	text.Draw(screen, msg, face, x, y, clr)
}
