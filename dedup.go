package starboard

import "time"

// DedupGuard reconciles the two input paths that can both fire for one
// physical tap. The native-touch path stamps the guard on every touch-start;
// pointer-origin events arriving within DedupWindow of that stamp are
// discarded entirely, letting the touch path take precedence.
//
// The guard also owns the spatial creation check: a new node may only be
// placed at least MinNodeSpacing normalized units away from every existing
// node of the same planet.
type DedupGuard struct {
	now       func() time.Time
	lastTouch time.Time
}

// NewDedupGuard creates a guard using the wall clock.
func NewDedupGuard() *DedupGuard {
	return &DedupGuard{now: time.Now}
}

// SetClock replaces the guard's time source. Intended for tests.
func (g *DedupGuard) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// MarkTouch records that a native-touch event was just handled. Called on
// every touch-start in edit mode, before any mapping or hit testing, so the
// stamp is taken even when the touch itself ends up discarded.
func (g *DedupGuard) MarkTouch() {
	g.lastTouch = g.now()
}

// SuppressPointer reports whether a pointer-origin event arriving now must be
// discarded because a native touch was handled within DedupWindow.
func (g *DedupGuard) SuppressPointer() bool {
	if g.lastTouch.IsZero() {
		return false
	}
	return g.now().Sub(g.lastTouch) < DedupWindow
}

// TooClose reports whether candidate lies within MinNodeSpacing of any
// existing point. Below-threshold taps are treated as no-ops, not errors.
func TooClose(points []NodePoint, candidate NodePoint) bool {
	for _, p := range points {
		if candidate.DistanceTo(p) < MinNodeSpacing {
			return true
		}
	}
	return false
}
