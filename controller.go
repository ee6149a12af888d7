package starboard

import (
	"fmt"
	"os"
)

// Controller turns raw taps into node mutations for one planet session. It
// owns no persistent state beyond the edit-mode flag and the dedup guard's
// timestamp; the point sequences and the credit ledger live in the Store.
//
// All methods run to completion on the caller's goroutine. The store is
// assumed to apply mutations synchronously and atomically, so the controller
// only has to avoid emitting two conflicting mutations for one physical
// gesture — the dedup guard's job.
type Controller struct {
	store    Store
	planetID string
	guard    *DedupGuard
	gate     CreditGate
	sink     EventSink

	ref    Rect
	hasRef bool

	editing    bool
	clearFocus func()

	debug bool
}

// NewController creates a controller for one planet backed by the store.
func NewController(store Store, planetID string) *Controller {
	return &Controller{
		store:    store,
		planetID: planetID,
		guard:    NewDedupGuard(),
		gate:     NewCreditGate(store),
	}
}

// PlanetID returns the planet this controller operates on.
func (c *Controller) PlanetID() string {
	return c.planetID
}

// Guard returns the controller's dedup guard, exposed so an embedding panel
// can share it and tests can swap its clock.
func (c *Controller) Guard() *DedupGuard {
	return c.guard
}

// SetEventSink sets the optional ECS bridge.
func (c *Controller) SetEventSink(sink EventSink) {
	c.sink = sink
}

// SetDebugMode enables stderr logging of suppressed and denied interactions.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// SetReference sets the rendered bounding box of the reference image.
// Coordinate-based features stay disabled until a rectangle with area is set.
func (c *Controller) SetReference(ref Rect) {
	c.ref = ref
	c.hasRef = ref.Width > 0 && ref.Height > 0
}

// ClearReference disables coordinate-based features, e.g. when the reference
// image is missing. Marker taps keep working.
func (c *Controller) ClearReference() {
	c.ref = Rect{}
	c.hasRef = false
}

// HasReference reports whether a reference rectangle is set.
func (c *Controller) HasReference() bool {
	return c.hasRef
}

// Reference returns the current reference rectangle.
func (c *Controller) Reference() Rect {
	return c.ref
}

// SetFocusClearer installs the callback run when edit mode turns on, so any
// input focus held elsewhere is released before the next tap arrives.
func (c *Controller) SetFocusClearer(fn func()) {
	c.clearFocus = fn
}

// Editing reports whether the session is in edit mode. The flag is plain
// synchronous state: handlers reading it after SetEditing observe the new
// value immediately.
func (c *Controller) Editing() bool {
	return c.editing
}

// SetEditing switches between Viewing and Editing. Turning edit mode on runs
// the focus clearer synchronously so the very next tap is interpreted as a
// placement rather than consumed by focus-loss handling.
func (c *Controller) SetEditing(on bool) {
	if on && !c.editing && c.clearFocus != nil {
		c.clearFocus()
	}
	c.editing = on
}

// ToggleEditing flips the edit-mode flag and returns the new value.
func (c *Controller) ToggleEditing() bool {
	c.SetEditing(!c.editing)
	return c.editing
}

// TouchDown handles a native-touch press at device coordinates. This is the
// authoritative path: it stamps the dedup guard first so a trailing pointer
// event for the same gesture is discarded, then maps, hit-tests, and either
// removes the hit node or creates a new inactive one.
func (c *Controller) TouchDown(cx, cy float64) Outcome {
	if !c.editing {
		return OutcomeIgnored
	}
	// Stamp before any mapping so the pointer path is suppressed even when
	// this touch itself ends up discarded.
	c.guard.MarkTouch()
	if !c.hasRef {
		return OutcomeIgnored
	}
	p, ok := Normalize(c.ref, cx, cy)
	if !ok {
		return c.report(OutcomeOutOfBounds)
	}
	set := c.store.NodeSet(c.planetID)
	if i := HitIndex(c.ref, set.Points, cx, cy); i >= 0 {
		return c.removeAt(set, i)
	}
	return c.create(set, p)
}

// PointerTap handles a synthetic pointer tap at device coordinates. The
// pointer path only creates: taps landing on an existing marker are discarded
// here because the marker's own handler (MarkerTap) owns them, and taps
// within DedupWindow of a native touch are discarded entirely.
func (c *Controller) PointerTap(cx, cy float64) Outcome {
	if !c.editing || !c.hasRef {
		return OutcomeIgnored
	}
	if c.guard.SuppressPointer() {
		return c.report(OutcomeDuplicate)
	}
	set := c.store.NodeSet(c.planetID)
	if HitIndex(c.ref, set.Points, cx, cy) >= 0 {
		return OutcomeIgnored
	}
	p, ok := Normalize(c.ref, cx, cy)
	if !ok {
		return c.report(OutcomeOutOfBounds)
	}
	return c.create(set, p)
}

// MarkerTap handles a tap on node i's own rendered marker. In edit mode the
// node is removed unconditionally; in viewing mode its active flag toggles,
// routing through the credit gate when flipping on.
func (c *Controller) MarkerTap(i int) Outcome {
	set := c.store.NodeSet(c.planetID)
	if i < 0 || i >= set.Len() {
		return OutcomeIgnored
	}
	if c.editing {
		return c.removeAt(set, i)
	}
	if set.Active[i] {
		return c.setActive(set, i, false, FactionNone, OutcomeDeactivated)
	}
	payer, outcome := c.gate.Authorize(c.planetID)
	if outcome != OutcomeActivated {
		c.emit(NodeEvent{
			Type:     ActivationDenied,
			PlanetID: c.planetID,
			Index:    i,
			Point:    set.Points[i],
			Outcome:  outcome,
		})
		return c.report(outcome)
	}
	return c.setActive(set, i, true, payer, OutcomeActivated)
}

// Reset clears both sequences for the planet, regardless of mode.
func (c *Controller) Reset() {
	c.store.SetNodeSet(c.planetID, NodeSet{})
	c.emit(NodeEvent{Type: NodesReset, PlanetID: c.planetID, Index: -1})
}

// create appends a new inactive node unless it lands too close to an
// existing one.
func (c *Controller) create(set NodeSet, p NodePoint) Outcome {
	if TooClose(set.Points, p) {
		return c.report(OutcomeDuplicate)
	}
	points := make([]NodePoint, set.Len()+1)
	active := make([]bool, set.Len()+1)
	copy(points, set.Points)
	copy(active, set.Active)
	points[set.Len()] = p
	c.store.SetNodeSet(c.planetID, NodeSet{Points: points, Active: active})
	c.emit(NodeEvent{
		Type:     NodeCreated,
		PlanetID: c.planetID,
		Index:    set.Len(),
		Point:    p,
		Outcome:  OutcomeCreated,
	})
	return OutcomeCreated
}

// removeAt drops index i from both sequences, shifting later indices down.
func (c *Controller) removeAt(set NodeSet, i int) Outcome {
	removed := set.Points[i]
	points := make([]NodePoint, 0, set.Len()-1)
	active := make([]bool, 0, set.Len()-1)
	points = append(points, set.Points[:i]...)
	points = append(points, set.Points[i+1:]...)
	active = append(active, set.Active[:i]...)
	active = append(active, set.Active[i+1:]...)
	c.store.SetNodeSet(c.planetID, NodeSet{Points: points, Active: active})
	c.emit(NodeEvent{
		Type:     NodeRemoved,
		PlanetID: c.planetID,
		Index:    i,
		Point:    removed,
		Outcome:  OutcomeRemoved,
	})
	return OutcomeRemoved
}

// setActive replaces both sequences with the flag at i flipped.
func (c *Controller) setActive(set NodeSet, i int, on bool, payer Faction, outcome Outcome) Outcome {
	points := make([]NodePoint, set.Len())
	active := make([]bool, set.Len())
	copy(points, set.Points)
	copy(active, set.Active)
	active[i] = on
	c.store.SetNodeSet(c.planetID, NodeSet{Points: points, Active: active})
	eventType := NodeDeactivated
	if on {
		eventType = NodeActivated
	}
	c.emit(NodeEvent{
		Type:     eventType,
		PlanetID: c.planetID,
		Index:    i,
		Point:    points[i],
		Payer:    payer,
		Outcome:  outcome,
	})
	return outcome
}

func (c *Controller) emit(event NodeEvent) {
	if c.sink != nil {
		c.sink.EmitEvent(event)
	}
}

// report logs non-mutating outcomes in debug mode and passes them through.
func (c *Controller) report(outcome Outcome) Outcome {
	if c.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[starboard] %s: %s\n", c.planetID, outcome)
	}
	return outcome
}
