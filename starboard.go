package starboard

import (
	"math"
	"time"
)

// Tuning constants for the interaction pipeline.
const (
	// DedupWindow is the interval during which a pointer-origin event is
	// discarded after a native-touch event, so that both firing for one
	// physical tap produce a single decision.
	DedupWindow = 600 * time.Millisecond

	// MinNodeSpacing is the minimum normalized distance between any two
	// nodes of the same planet. Creations closer than this are ignored.
	MinNodeSpacing = 0.03

	// HitRadius is the marker hit-test radius in screen pixels. Pixel
	// rather than normalized units keeps the tappable target size constant
	// regardless of image scaling.
	HitRadius = 22.0

	// ActivationCost is the credit price of switching a node on.
	// Switching a node off is free and never refunds.
	ActivationCost = 1
)

// NodePoint is a calibrated node position in normalized coordinates. Both
// components are in [0, 1], relative to the reference image's rendered
// bounding box. A NodePoint is immutable once created; removal replaces the
// containing sequence rather than mutating it.
type NodePoint struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance to other in normalized units.
func (p NodePoint) DistanceTo(other NodePoint) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// NodeSet pairs a planet's node positions with their active flags. The two
// slices are index-aligned and always equal in length; every mutation
// replaces both together.
type NodeSet struct {
	Points []NodePoint
	Active []bool
}

// Len returns the number of nodes in the set.
func (s NodeSet) Len() int {
	return len(s.Points)
}

// Faction identifies a resource-holding party. The zero value means no
// faction.
type Faction string

// FactionNone marks an unowned planet (or an unset session faction).
const FactionNone Faction = ""

// FactionDestroyed is the owner sentinel for a permanently destroyed planet.
// It is never a known faction and holds no credits.
const FactionDestroyed Faction = "destroyed"

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Outcome classifies the result of one interaction event. Suppressions and
// denials are expected control flow, not errors; nothing here propagates as
// a failure.
type Outcome uint8

const (
	OutcomeIgnored             Outcome = iota // event consumed with no effect
	OutcomeCreated                            // a node was appended
	OutcomeRemoved                            // a node was removed
	OutcomeActivated                          // a node flipped on, one credit debited
	OutcomeDeactivated                        // a node flipped off, no ledger change
	OutcomeOutOfBounds                        // tap mapped outside the reference image
	OutcomeDuplicate                          // dedup guard suppressed the event
	OutcomeNoPayingFaction                    // activation with no resolvable faction
	OutcomeInsufficientCredits                // activation with an empty balance
)

// String returns a short name for the outcome, used in debug logging.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCreated:
		return "created"
	case OutcomeRemoved:
		return "removed"
	case OutcomeActivated:
		return "activated"
	case OutcomeDeactivated:
		return "deactivated"
	case OutcomeOutOfBounds:
		return "out-of-bounds"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeNoPayingFaction:
		return "no-paying-faction"
	case OutcomeInsufficientCredits:
		return "insufficient-credits"
	default:
		return "unknown"
	}
}

// Mutated reports whether the outcome changed the node set or the ledger.
func (o Outcome) Mutated() bool {
	switch o {
	case OutcomeCreated, OutcomeRemoved, OutcomeActivated, OutcomeDeactivated:
		return true
	}
	return false
}

// NodeEventType identifies a kind of node mutation event.
type NodeEventType uint8

const (
	NodeCreated      NodeEventType = iota // a node was placed
	NodeRemoved                           // a node was removed
	NodeActivated                         // a node flipped on
	NodeDeactivated                       // a node flipped off
	NodesReset                            // the whole set was cleared
	ActivationDenied                      // the credit gate refused a flip
)

// NodeEvent carries node mutation data for the ECS bridge.
type NodeEvent struct {
	Type     NodeEventType
	PlanetID string
	Index    int // -1 for NodesReset
	Point    NodePoint
	Payer    Faction // faction debited for NodeActivated, else FactionNone
	Outcome  Outcome
}

// EventSink is the interface for optional ECS integration. When set on a
// Controller, node mutations are forwarded to the ECS.
type EventSink interface {
	EmitEvent(event NodeEvent)
}
