package starboard

import (
	"testing"
	"time"
)

// testRef is a 1000×1000 reference rectangle at the origin, so device
// coordinates are normalized coordinates × 1000.
var testRef = Rect{Width: 1000, Height: 1000}

// newTestController builds a controller in edit mode over a seeded store,
// with a manually advanced clock on its dedup guard.
func newTestController(t *testing.T) (*Controller, *MemoryStore, *fakeClock) {
	t.Helper()
	store := NewMemoryStore()
	store.SetCredits("terra", 3)
	store.SetOwner("vega-4", "terra")

	ctrl := NewController(store, "vega-4")
	ctrl.SetReference(testRef)
	ctrl.SetEditing(true)

	clock := newFakeClock()
	ctrl.Guard().SetClock(clock.Now)
	return ctrl, store, clock
}

// checkLengths fails the test if the two sequences have drifted apart.
func checkLengths(t *testing.T, store *MemoryStore, planetID string) {
	t.Helper()
	set := store.NodeSet(planetID)
	if len(set.Points) != len(set.Active) {
		t.Fatalf("sequence lengths diverged: %d points, %d flags",
			len(set.Points), len(set.Active))
	}
}

func TestTouchDown_CreatesInactiveNode(t *testing.T) {
	ctrl, store, _ := newTestController(t)

	if outcome := ctrl.TouchDown(250, 750); outcome != OutcomeCreated {
		t.Fatalf("outcome = %v, want created", outcome)
	}
	set := store.NodeSet("vega-4")
	if set.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", set.Len())
	}
	if set.Points[0] != (NodePoint{X: 0.25, Y: 0.75}) {
		t.Errorf("point = %+v", set.Points[0])
	}
	if set.Active[0] {
		t.Error("new nodes must start inactive")
	}
	checkLengths(t, store, "vega-4")
}

func TestTouchDown_IgnoredOutsideEditMode(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	ctrl.SetEditing(false)

	if outcome := ctrl.TouchDown(500, 500); outcome != OutcomeIgnored {
		t.Fatalf("outcome = %v, want ignored", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 0 {
		t.Errorf("viewing-mode touch must not create, got %d nodes", set.Len())
	}
}

func TestTouchDown_OutOfBounds(t *testing.T) {
	ctrl, store, _ := newTestController(t)

	if outcome := ctrl.TouchDown(1500, 500); outcome != OutcomeOutOfBounds {
		t.Fatalf("outcome = %v, want out-of-bounds", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 0 {
		t.Error("out-of-bounds tap must have no side effect")
	}
	checkLengths(t, store, "vega-4")
}

func TestTouchDown_NoReference(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	ctrl.ClearReference()

	if outcome := ctrl.TouchDown(500, 500); outcome != OutcomeIgnored {
		t.Fatalf("outcome = %v, want ignored without a reference", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 0 {
		t.Error("no-reference tap must not create")
	}
}

func TestSpatialDedup_SuppressesNearbyCreation(t *testing.T) {
	ctrl, store, clock := newTestController(t)

	ctrl.TouchDown(500, 500)
	clock.Advance(time.Second)

	// 10 px away = 0.01 normalized, inside MinNodeSpacing.
	if outcome := ctrl.TouchDown(510, 500); outcome != OutcomeDuplicate {
		t.Fatalf("outcome = %v, want duplicate", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 1 {
		t.Errorf("expected 1 node, got %d", set.Len())
	}
	checkLengths(t, store, "vega-4")
}

func TestSpatialInvariant_AfterManyCreations(t *testing.T) {
	ctrl, store, clock := newTestController(t)

	coords := [][2]float64{
		{100, 100}, {105, 105}, {200, 200}, {210, 210}, {202, 198},
		{500, 500}, {505, 505}, {900, 100}, {912, 100},
	}
	for _, c := range coords {
		ctrl.TouchDown(c[0], c[1])
		clock.Advance(time.Second)
	}

	set := store.NodeSet("vega-4")
	for i := 0; i < set.Len(); i++ {
		for j := i + 1; j < set.Len(); j++ {
			if d := set.Points[i].DistanceTo(set.Points[j]); d < MinNodeSpacing {
				t.Errorf("points %d and %d are %v apart, below %v", i, j, d, MinNodeSpacing)
			}
		}
	}
	checkLengths(t, store, "vega-4")
}

func TestCrossPathDedup_OneDecisionPerGesture(t *testing.T) {
	ctrl, store, clock := newTestController(t)

	// One physical tap dispatches both events; the pointer event trails by
	// a few hundred milliseconds.
	if outcome := ctrl.TouchDown(400, 400); outcome != OutcomeCreated {
		t.Fatalf("touch outcome = %v", outcome)
	}
	clock.Advance(300 * time.Millisecond)
	if outcome := ctrl.PointerTap(400, 400); outcome != OutcomeDuplicate {
		t.Fatalf("pointer outcome = %v, want duplicate", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 1 {
		t.Fatalf("expected exactly 1 node for one gesture, got %d", set.Len())
	}

	// A genuinely separate pointer tap after the window passes.
	clock.Advance(DedupWindow)
	if outcome := ctrl.PointerTap(700, 700); outcome != OutcomeCreated {
		t.Fatalf("late pointer outcome = %v, want created", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", set.Len())
	}
	checkLengths(t, store, "vega-4")
}

func TestCrossPathDedup_StampsEvenWhenTouchDiscarded(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	ctrl.TouchDown(500, 500)
	clock.Advance(time.Second)

	// This touch is spatially suppressed, but it still stamps the guard.
	ctrl.TouchDown(505, 500)
	clock.Advance(100 * time.Millisecond)
	if outcome := ctrl.PointerTap(800, 800); outcome != OutcomeDuplicate {
		t.Errorf("pointer after discarded touch = %v, want duplicate", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 1 {
		t.Errorf("expected 1 node, got %d", set.Len())
	}
}

func TestPointerTap_DiscardsMarkerHits(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	ctrl.TouchDown(500, 500)
	clock.Advance(time.Second)

	// A pointer tap within the marker's hit radius belongs to the marker's
	// own handler; the coordinate path must neither create nor remove.
	if outcome := ctrl.PointerTap(510, 500); outcome != OutcomeIgnored {
		t.Fatalf("outcome = %v, want ignored", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 1 {
		t.Errorf("expected 1 node, got %d", set.Len())
	}
}

func TestPointerTap_NeverDeletes(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	ctrl.TouchDown(500, 500)
	clock.Advance(time.Second)

	// Even a tap 30 px away (outside the 22 px radius, inside nothing
	// else) only ever creates — and here spatial dedup (30 px = 0.03)
	// just allows it.
	if outcome := ctrl.PointerTap(530, 500); outcome != OutcomeCreated {
		t.Fatalf("outcome = %v, want created", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", set.Len())
	}
}

func TestHitPrecedence_RemovalOverCreation(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	ctrl.TouchDown(500, 500)
	clock.Advance(time.Second)

	// The tap coordinate maps to valid normalized space, but the existing
	// marker within radius wins: remove, don't create.
	if outcome := ctrl.TouchDown(515, 500); outcome != OutcomeRemoved {
		t.Fatalf("outcome = %v, want removed", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 0 {
		t.Errorf("expected 0 nodes, got %d", set.Len())
	}
	checkLengths(t, store, "vega-4")
}

func TestRemoval_Reindexes(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	store.SetNodeSet("vega-4", NodeSet{
		Points: []NodePoint{{X: 0.1, Y: 0.1}, {X: 0.5, Y: 0.5}, {X: 0.9, Y: 0.9}},
		Active: []bool{true, false, true},
	})

	if outcome := ctrl.MarkerTap(1); outcome != OutcomeRemoved {
		t.Fatalf("outcome = %v, want removed", outcome)
	}
	set := store.NodeSet("vega-4")
	if set.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", set.Len())
	}
	if set.Points[1] != (NodePoint{X: 0.9, Y: 0.9}) {
		t.Errorf("former index 2 should shift to 1, got %+v", set.Points[1])
	}
	if !set.Active[0] || !set.Active[1] {
		t.Errorf("pairwise correspondence broken: %v", set.Active)
	}
	checkLengths(t, store, "vega-4")
}

func TestMarkerTap_ActivationDebitsOnce(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	store.SetNodeSet("vega-4", NodeSet{
		Points: []NodePoint{{X: 0.5, Y: 0.5}},
		Active: []bool{false},
	})
	ctrl.SetEditing(false)

	if outcome := ctrl.MarkerTap(0); outcome != OutcomeActivated {
		t.Fatalf("outcome = %v, want activated", outcome)
	}
	if !store.NodeSet("vega-4").Active[0] {
		t.Error("flag should be on")
	}
	if balance, _ := store.Credits("terra"); balance != 2 {
		t.Errorf("balance = %d, want 2", balance)
	}

	// Deactivation is free: no refund, no charge.
	if outcome := ctrl.MarkerTap(0); outcome != OutcomeDeactivated {
		t.Fatalf("outcome = %v, want deactivated", outcome)
	}
	if store.NodeSet("vega-4").Active[0] {
		t.Error("flag should be off")
	}
	if balance, _ := store.Credits("terra"); balance != 2 {
		t.Errorf("balance after deactivation = %d, want 2", balance)
	}
	checkLengths(t, store, "vega-4")
}

func TestMarkerTap_DenialLeavesStateIntact(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	store.SetCredits("terra", 0)
	store.SetNodeSet("vega-4", NodeSet{
		Points: []NodePoint{{X: 0.5, Y: 0.5}},
		Active: []bool{false},
	})
	ctrl.SetEditing(false)

	if outcome := ctrl.MarkerTap(0); outcome != OutcomeInsufficientCredits {
		t.Fatalf("outcome = %v, want insufficient-credits", outcome)
	}
	if store.NodeSet("vega-4").Active[0] {
		t.Error("denied activation must not flip the flag")
	}
	if balance, _ := store.Credits("terra"); balance != 0 {
		t.Errorf("denied activation must not touch the balance, got %d", balance)
	}
	if notices := store.Notices(); len(notices) != 1 {
		t.Errorf("expected one notice, got %v", notices)
	}
	checkLengths(t, store, "vega-4")
}

func TestMarkerTap_EditModeRemovesUnconditionally(t *testing.T) {
	ctrl, store, _ := newTestController(t)
	store.SetCredits("terra", 0) // no credits needed for removal
	store.SetNodeSet("vega-4", NodeSet{
		Points: []NodePoint{{X: 0.5, Y: 0.5}},
		Active: []bool{true},
	})

	if outcome := ctrl.MarkerTap(0); outcome != OutcomeRemoved {
		t.Fatalf("outcome = %v, want removed", outcome)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 0 {
		t.Errorf("expected empty set, got %d nodes", set.Len())
	}
}

func TestMarkerTap_IndexOutOfRange(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	if outcome := ctrl.MarkerTap(0); outcome != OutcomeIgnored {
		t.Errorf("tap on missing marker = %v, want ignored", outcome)
	}
	if outcome := ctrl.MarkerTap(-1); outcome != OutcomeIgnored {
		t.Errorf("negative index = %v, want ignored", outcome)
	}
}

func TestReset_ClearsBothSequences(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	for i := 0; i < 5; i++ {
		ctrl.TouchDown(float64(100+i*150), 500)
		clock.Advance(time.Second)
	}
	if set := store.NodeSet("vega-4"); set.Len() != 5 {
		t.Fatalf("setup expected 5 nodes, got %d", set.Len())
	}

	ctrl.SetEditing(false) // reset works regardless of mode
	ctrl.Reset()
	set := store.NodeSet("vega-4")
	if len(set.Points) != 0 || len(set.Active) != 0 {
		t.Errorf("reset should empty both sequences, got %+v", set)
	}
}

func TestSetEditing_ClearsFocusOnEnable(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctrl.SetEditing(false)

	var cleared int
	ctrl.SetFocusClearer(func() { cleared++ })

	ctrl.SetEditing(true)
	if cleared != 1 {
		t.Fatalf("focus clearer calls = %d, want 1", cleared)
	}
	// Already editing: no re-clear. Disabling never clears.
	ctrl.SetEditing(true)
	ctrl.SetEditing(false)
	if cleared != 1 {
		t.Errorf("focus clearer calls = %d, want 1", cleared)
	}

	// The flag is readable with no staleness: the next event sees it.
	ctrl.SetEditing(true)
	if !ctrl.Editing() {
		t.Error("Editing must reflect SetEditing immediately")
	}
	if outcome := ctrl.TouchDown(500, 500); outcome != OutcomeCreated {
		t.Errorf("tap right after enabling edit mode = %v, want created", outcome)
	}
}

func TestToggleEditing(t *testing.T) {
	ctrl, _, _ := newTestController(t)
	ctrl.SetEditing(false)
	if !ctrl.ToggleEditing() || !ctrl.Editing() {
		t.Error("first toggle should enable")
	}
	if ctrl.ToggleEditing() || ctrl.Editing() {
		t.Error("second toggle should disable")
	}
}

func TestController_EmitsNodeEvents(t *testing.T) {
	ctrl, store, clock := newTestController(t)
	sink := &recordingSink{}
	ctrl.SetEventSink(sink)

	ctrl.TouchDown(500, 500) // created
	clock.Advance(time.Second)
	ctrl.SetEditing(false)
	ctrl.MarkerTap(0) // activated
	ctrl.MarkerTap(0) // deactivated
	store.SetCredits("terra", 0)
	ctrl.MarkerTap(0) // denied
	ctrl.SetEditing(true)
	ctrl.MarkerTap(0) // removed
	ctrl.Reset()      // reset

	want := []NodeEventType{
		NodeCreated, NodeActivated, NodeDeactivated,
		ActivationDenied, NodeRemoved, NodesReset,
	}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(sink.events), len(want), sink.events)
	}
	for i, event := range sink.events {
		if event.Type != want[i] {
			t.Errorf("event %d type = %v, want %v", i, event.Type, want[i])
		}
		if event.PlanetID != "vega-4" {
			t.Errorf("event %d planet = %q", i, event.PlanetID)
		}
	}
	if sink.events[1].Payer != "terra" {
		t.Errorf("activation payer = %q, want terra", sink.events[1].Payer)
	}
	if sink.events[3].Outcome != OutcomeInsufficientCredits {
		t.Errorf("denial outcome = %v", sink.events[3].Outcome)
	}
}

func TestOutcome_Mutated(t *testing.T) {
	mutating := []Outcome{OutcomeCreated, OutcomeRemoved, OutcomeActivated, OutcomeDeactivated}
	for _, o := range mutating {
		if !o.Mutated() {
			t.Errorf("%v should be mutating", o)
		}
	}
	inert := []Outcome{
		OutcomeIgnored, OutcomeOutOfBounds, OutcomeDuplicate,
		OutcomeNoPayingFaction, OutcomeInsufficientCredits,
	}
	for _, o := range inert {
		if o.Mutated() {
			t.Errorf("%v should not be mutating", o)
		}
	}
}

// recordingSink captures emitted node events for assertions.
type recordingSink struct {
	events []NodeEvent
}

func (s *recordingSink) EmitEvent(event NodeEvent) {
	s.events = append(s.events, event)
}

func BenchmarkTouchDown_100Nodes(b *testing.B) {
	store := NewMemoryStore()
	store.SetCredits("terra", 1)
	ctrl := NewController(store, "vega-4")
	ctrl.SetReference(Rect{Width: 1000, Height: 1000})
	ctrl.SetEditing(true)

	points := make([]NodePoint, 100)
	active := make([]bool, 100)
	for i := range points {
		points[i] = NodePoint{X: float64(i%10) * 0.1, Y: float64(i/10) * 0.1}
	}
	store.SetNodeSet("vega-4", NodeSet{Points: points, Active: active})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		// Alternates remove and re-create at the same spot.
		ctrl.TouchDown(550, 550)
	}
}
