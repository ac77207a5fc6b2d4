package component

// Gate is a one-shot wait for the first nonzero directional input.
type Gate struct {
	open      bool
	cancelled bool
}

// Advance feeds this tick's direction and reports true only on the tick the
// gate opens.
func (g *Gate) Advance(direction int) bool {
	if g == nil || g.open || g.cancelled || direction == 0 {
		return false
	}
	g.open = true
	return true
}

func (g *Gate) Open() bool {
	return g != nil && g.open
}

// Cancel stops a waiting gate from ever opening.
func (g *Gate) Cancel() {
	if g != nil {
		g.cancelled = true
	}
}
