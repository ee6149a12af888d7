// Package starboard is a planet node calibration panel for [Ebitengine].
//
// A starboard [Panel] overlays tappable "nodes" on a planet's reference
// image. In edit mode, taps on empty space place nodes and taps on a marker
// remove it; in viewing mode, marker taps toggle a node's active flag, with
// activation debiting one credit from the resolved faction's balance.
//
// The panel reconciles two independent input paths — native touches and
// synthetic pointer events — that can both fire for one physical tap, and
// guarantees a single placement or removal decision per gesture. Node
// positions are stored in normalized [0,1]² coordinates relative to the
// reference image's rendered bounding box, so calibrations survive resizes.
//
// # Quick start
//
//	store := starboard.NewMemoryStore()
//	store.SetCredits("terra", 3)
//	store.SetOwner("vega-4", "terra")
//
//	panel := starboard.NewPanel(store, "vega-4")
//	panel.SetBounds(starboard.Rect{Width: 640, Height: 480})
//	if err := panel.LoadImage("assets"); err != nil {
//		log.Print(err) // missing image degrades the panel, not fatal
//	}
//
// Call [Panel.Update] from your game's Update and [Panel.Draw] from Draw.
//
// # State ownership
//
// All durable state — node sequences, active flags, planet ownership, the
// faction credit ledger — lives behind the [Store] interface. [MemoryStore]
// is the in-memory implementation; the sqlite subpackage persists the same
// contract to disk. The controller never leaves a planet's point and active
// sequences at different lengths, even on rejected transitions.
//
// [Ebitengine]: https://ebitengine.org
package starboard
