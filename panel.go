package starboard

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Panel is the Ebitengine-facing calibration surface for one planet. It owns
// the interaction controller, the reference image, the toast queue, and the
// per-frame input pump that feeds both physical input paths into the
// controller.
//
// Call Update from the game's Update and Draw from the game's Draw; the
// panel has no loop of its own.
type Panel struct {
	store Store
	ctrl  *Controller

	bounds       Rect
	img          *ebiten.Image
	degradedText string

	toasts ToastQueue
	pulses []*markerPulse

	// Input edge state. Mouse is the synthetic pointer path; touches are
	// the native path and take precedence through the controller's guard.
	mouseWasDown bool
	touchIDs     []ebiten.TouchID
	liveTouches  map[ebiten.TouchID]struct{}

	injectQueue []syntheticTap
	script      *ScriptRunner
}

// markerPulse animates a ring around a marker that just flipped on.
type markerPulse struct {
	index  int
	radius *gween.Tween
	value  float64
	done   bool
}

// NewPanel creates a panel over the store for one planet. The reference
// rectangle stays unset until SetImage or LoadImage succeeds, which keeps
// coordinate-based features disabled.
func NewPanel(store Store, planetID string) *Panel {
	return &Panel{
		store:       store,
		ctrl:        NewController(store, planetID),
		liveTouches: make(map[ebiten.TouchID]struct{}),
	}
}

// Controller returns the panel's interaction controller.
func (p *Panel) Controller() *Controller {
	return p.ctrl
}

// Toasts returns the panel's toast queue, so embedding apps can surface
// store notices through it.
func (p *Panel) Toasts() *ToastQueue {
	return &p.toasts
}

// SetBounds places the panel on screen and refreshes the reference
// rectangle for the current image.
func (p *Panel) SetBounds(bounds Rect) {
	p.bounds = bounds
	p.refreshReference()
}

// Bounds returns the panel's screen placement.
func (p *Panel) Bounds() Rect {
	return p.bounds
}

// SetImage installs a reference image directly. A nil image degrades the
// panel.
func (p *Panel) SetImage(img *ebiten.Image) {
	p.img = img
	p.degradedText = ""
	p.refreshReference()
}

// LoadImage loads the planet's reference image from dir using the store's
// image number and the predictable naming scheme. A missing file is
// non-fatal: the panel degrades to informational text and the error wraps
// ErrMissingImage for callers that want to log it.
func (p *Panel) LoadImage(dir string) error {
	number := p.store.ImageNumber(p.ctrl.PlanetID())
	img, err := LoadReferenceImage(dir, number)
	if err != nil {
		p.img = nil
		p.degradedText = "no reference image: " + ReferenceImageName(number)
		p.refreshReference()
		if errors.Is(err, ErrMissingImage) {
			p.toasts.Push(p.degradedText, ToastError)
		}
		return err
	}
	p.SetImage(img)
	return nil
}

// refreshReference recomputes the rendered bounding box of the image inside
// the panel bounds, or clears it when there is no image to map against.
func (p *Panel) refreshReference() {
	if p.img == nil {
		p.ctrl.ClearReference()
		return
	}
	w, h := p.img.Bounds().Dx(), p.img.Bounds().Dy()
	ref := FitRect(p.bounds, w, h)
	if ref.Width <= 0 || ref.Height <= 0 {
		p.ctrl.ClearReference()
		return
	}
	p.ctrl.SetReference(ref)
}

// Update pumps input and advances toasts and pulse animations. Touches are
// processed before the mouse so a gesture that fires both stamps the dedup
// guard before the pointer path runs.
func (p *Panel) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if p.script != nil {
		p.script.step(p)
	}
	p.processInjected()
	p.processTouches()
	p.processMouse()

	p.toasts.Update(dt)
	p.updatePulses(dt)
}

// processTouches routes touch-starts: the native path in edit mode, the
// marker's own handler in viewing mode.
func (p *Panel) processTouches() {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])

	seen := make(map[ebiten.TouchID]struct{}, len(p.touchIDs))
	for _, id := range p.touchIDs {
		seen[id] = struct{}{}
		if _, held := p.liveTouches[id]; held {
			continue
		}
		p.liveTouches[id] = struct{}{}
		x, y := ebiten.TouchPosition(id)
		p.touchStart(float64(x), float64(y))
	}
	for id := range p.liveTouches {
		if _, ok := seen[id]; !ok {
			delete(p.liveTouches, id)
		}
	}
}

// touchStart handles one native touch press.
func (p *Panel) touchStart(x, y float64) {
	if p.ctrl.Editing() {
		p.route(p.ctrl.TouchDown(x, y), -1)
		return
	}
	// Viewing mode: the coordinate path ignores touches, but a touch landing
	// on a marker is that marker's own tap.
	if i := p.markerAt(x, y); i >= 0 {
		p.route(p.ctrl.MarkerTap(i), i)
	}
}

// processMouse handles the synthetic pointer path on the press edge.
func (p *Panel) processMouse() {
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	defer func() { p.mouseWasDown = down }()
	if !down || p.mouseWasDown {
		return
	}
	mx, my := ebiten.CursorPosition()
	p.pointerTap(float64(mx), float64(my))
}

// pointerTap handles one pointer press: a marker hit is the marker's own
// click, anything else goes down the pointer creation path. A pointer event
// trailing a native touch is the same physical gesture, so it is discarded
// before any hit-testing; otherwise a touch that just placed a node would
// have its own trailing pointer land on the new marker and remove it.
// Viewing-mode touches never stamp the guard, so marker clicks there are
// unaffected.
func (p *Panel) pointerTap(x, y float64) {
	if p.ctrl.Guard().SuppressPointer() {
		p.route(p.ctrl.PointerTap(x, y), -1)
		return
	}
	if i := p.markerAt(x, y); i >= 0 {
		p.route(p.ctrl.MarkerTap(i), i)
		return
	}
	p.route(p.ctrl.PointerTap(x, y), -1)
}

// markerAt hit-tests the rendered markers at device coordinates.
func (p *Panel) markerAt(x, y float64) int {
	if !p.ctrl.HasReference() {
		return -1
	}
	set := p.store.NodeSet(p.ctrl.PlanetID())
	return HitIndex(p.ctrl.Reference(), set.Points, x, y)
}

// route surfaces an interaction outcome: a credit denial raises a toast, an
// activation starts the marker pulse. Everything else is already settled by
// the controller.
func (p *Panel) route(outcome Outcome, index int) {
	if !outcome.Mutated() {
		if outcome == OutcomeInsufficientCredits {
			p.toasts.Push("not enough credits", ToastWarning)
		}
		return
	}
	switch outcome {
	case OutcomeActivated:
		if index >= 0 {
			p.startPulse(index)
		}
	case OutcomeRemoved:
		// Indices shifted; drop pulses rather than remap them.
		p.pulses = p.pulses[:0]
	}
}

// startPulse begins the activation ring animation on marker index.
func (p *Panel) startPulse(index int) {
	p.pulses = append(p.pulses, &markerPulse{
		index:  index,
		radius: gween.New(float32(HitRadius), float32(markerRadius), 0.35, ease.OutQuad),
		value:  HitRadius,
	})
}

// updatePulses advances and compacts the pulse list.
func (p *Panel) updatePulses(dt float32) {
	live := p.pulses[:0]
	for _, pulse := range p.pulses {
		value, finished := pulse.radius.Update(dt)
		pulse.value = float64(value)
		pulse.done = finished
		if !pulse.done {
			live = append(live, pulse)
		}
	}
	p.pulses = live
}
