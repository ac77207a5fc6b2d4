package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/foxrun/common"
	"github.com/milk9111/foxrun/physics"
)

// drawPhysicsDebug outlines every shape in space on top of screen.
func drawPhysicsDebug(screen *ebiten.Image, space *physics.Space) {
	if space == nil || space.Space() == nil || screen == nil {
		return
	}
	cp.DrawSpace(space.Space(), &debugDrawer{screen: screen, space: space})
}

type debugDrawer struct {
	screen *ebiten.Image
	space  *physics.Space
}

func (d *debugDrawer) line(a, b cp.Vector, c color.Color) {
	ax, ay := common.WorldToScreen(a.X, a.Y)
	bx, by := common.WorldToScreen(b.X, b.Y)
	vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), 1, c, true)
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	const steps = 16
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.line(prev, cur, c)
		prev = cur
	}
	d.line(pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, c)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.line(a, b, fcolorToRGBA(outline))
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], c)
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2 / common.PixelsPerUnit
	c := fcolorToRGBA(fill)
	d.line(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.line(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES | cp.DRAW_COLLISION_POINTS
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

// ShapeColor tells ground, player and foxes apart.
func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if b := d.space.BodyOf(shape); b != nil {
		if b.Role() == physics.RoleFox {
			return cp.FColor{R: 1.0, G: 0.55, B: 0.1, A: 1.0}
		}
		return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
	}
	return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Max(0, math.Min(1, float64(v))) * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
