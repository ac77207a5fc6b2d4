package session

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/component"
)

var (
	defaultBackground = color.NRGBA{R: 0x1d, G: 0x24, B: 0x33, A: 0xff}
	defaultGround     = color.NRGBA{R: 0x3f, G: 0x5a, B: 0x3a, A: 0xff}
	defaultCat        = color.NRGBA{R: 0xe8, G: 0x91, B: 0x3a, A: 0xff}
	defaultFox        = color.NRGBA{R: 0xc4, G: 0x44, B: 0x1c, A: 0xff}
)

// Draw renders the run as flat shapes: ground, foxes, the cat, then the HUD
// and tutorial overlay.
func (s *Session) Draw(screen *ebiten.Image) {
	screen.Fill(s.worldSpec.Background.Or(defaultBackground))

	gx, gy := common.WorldToScreen(s.worldSpec.GroundLeft, s.worldSpec.GroundY)
	gw := (s.worldSpec.GroundRight - s.worldSpec.GroundLeft) * common.PixelsPerUnit
	vector.FillRect(screen, float32(gx), float32(gy), float32(gw), common.BaseHeight, s.worldSpec.GroundColor.Or(defaultGround), false)

	for _, f := range s.Pack.Foxes() {
		spec := f.Spec()
		drawCharacter(screen, f.Body().Position(), spec.Collider.Width, spec.Collider.Height, -1, f.Animator(), spec.Color.Or(defaultFox), 1)
	}

	if !s.Player.Destroyed() {
		drawCharacter(screen, s.Player.Body().Position(), s.playerSpec.Collider.Width, s.playerSpec.Collider.Height,
			s.Player.Facing(), s.Player.Animator(), s.skinColor(), s.Player.Alpha())
	}

	s.HUD.Draw(screen)
	s.Tutorial.Draw(screen)
}

func (s *Session) skinColor() color.Color {
	i := s.prefs.CatID - 1
	if i < 0 || i >= len(s.playerSpec.Skins) {
		return defaultCat
	}
	return s.playerSpec.Skins[i].Color.Or(defaultCat)
}

// drawCharacter draws a body box with a small head marker on the facing side.
// The box squashes a little on odd frames of the current clip so animation
// state is visible without sprites.
func drawCharacter(screen *ebiten.Image, pos cp.Vector, w, h float64, facing int, anim *component.Animator, clr color.Color, alpha float64) {
	squash := 1.0
	if clip := anim.Current(); clip != nil && clip.Frame()%2 == 1 {
		squash = 0.92
	}
	sh := h * squash

	x, y := common.WorldToScreen(pos.X-w/2, pos.Y-h/2+sh)
	c := withAlpha(clr, alpha)
	vector.FillRect(screen, float32(x), float32(y), float32(w*common.PixelsPerUnit), float32(sh*common.PixelsPerUnit), c, false)

	head := 0.35 * h * common.PixelsPerUnit
	hx := x + w*common.PixelsPerUnit - head/2
	if facing < 0 {
		hx = x - head/2
	}
	vector.FillRect(screen, float32(hx), float32(y-head/2), float32(head), float32(head), c, false)
}

func withAlpha(clr color.Color, alpha float64) color.Color {
	k := common.Clamp(alpha, 0, 1)
	r, g, b, a := clr.RGBA()
	return color.RGBA64{
		R: uint16(float64(r) * k),
		G: uint16(float64(g) * k),
		B: uint16(float64(b) * k),
		A: uint16(float64(a) * k),
	}
}
