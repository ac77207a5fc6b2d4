package ui

import (
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	faceOnce sync.Once
	face     ebtext.Face
)

// Face returns the shared HUD font.
func Face() ebtext.Face {
	faceOnce.Do(func() {
		face = ebtext.NewGoXFace(basicfont.Face7x13)
	})
	return face
}

// drawText draws s with its top left corner at (x, y), scaled up by scale.
func drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, Face(), op)
}

// textWidth returns the advance of s at scale.
func textWidth(s string, scale float64) float64 {
	w, _ := ebtext.Measure(s, Face(), 0)
	return w * scale
}
