package starboard

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// markerRadius is the drawn radius of a node marker in pixels. The tappable
// area is the larger HitRadius.
const markerRadius = 8.0

// Marker and chrome colors.
var (
	colorInactive = color.RGBA{R: 0x8a, G: 0x8f, B: 0x98, A: 0xff}
	colorActive   = color.RGBA{R: 0x46, G: 0xc8, B: 0x6e, A: 0xff}
	colorEditRing = color.RGBA{R: 0xe8, G: 0xb4, B: 0x3a, A: 0xff}
	colorPulse    = color.RGBA{R: 0x46, G: 0xc8, B: 0x6e, A: 0x90}

	toastColors = map[ToastSeverity]color.RGBA{
		ToastInfo:    {R: 0x28, G: 0x28, B: 0x32, A: 0xd8},
		ToastWarning: {R: 0x3c, G: 0x32, B: 0x14, A: 0xd8},
		ToastError:   {R: 0x3c, G: 0x19, B: 0x19, A: 0xd8},
	}
)

// Draw renders the reference image, the node markers, and the toasts into
// screen. A degraded panel renders informational text instead of the
// calibration surface.
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.img == nil {
		p.drawDegraded(screen)
		p.drawToasts(screen)
		return
	}

	ref := p.ctrl.Reference()
	op := &ebiten.DrawImageOptions{}
	w := p.img.Bounds().Dx()
	if w > 0 {
		scale := ref.Width / float64(w)
		op.GeoM.Scale(scale, scale)
	}
	op.GeoM.Translate(ref.X, ref.Y)
	screen.DrawImage(p.img, op)

	p.drawMarkers(screen, ref)
	if p.ctrl.Editing() {
		ebitenutil.DebugPrintAt(screen, "edit mode: tap to place, tap a marker to remove",
			int(p.bounds.X)+4, int(p.bounds.Y)+4)
	}
	p.drawToasts(screen)
}

// drawMarkers renders each node as a filled circle, ringed in edit mode, plus
// any running activation pulses.
func (p *Panel) drawMarkers(screen *ebiten.Image, ref Rect) {
	set := p.store.NodeSet(p.ctrl.PlanetID())
	for i, point := range set.Points {
		x, y := Denormalize(ref, point)
		fill := colorInactive
		if set.Active[i] {
			fill = colorActive
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), markerRadius, fill, true)
		if p.ctrl.Editing() {
			vector.StrokeCircle(screen, float32(x), float32(y), markerRadius+3, 1.5, colorEditRing, true)
		}
	}
	for _, pulse := range p.pulses {
		if pulse.index >= set.Len() {
			continue
		}
		x, y := Denormalize(ref, set.Points[pulse.index])
		vector.StrokeCircle(screen, float32(x), float32(y), float32(pulse.value), 2, colorPulse, true)
	}
}

// drawDegraded renders the missing-image informational text.
func (p *Panel) drawDegraded(screen *ebiten.Image) {
	text := p.degradedText
	if text == "" {
		text = "no reference image"
	}
	ebitenutil.DebugPrintAt(screen, text, int(p.bounds.X)+4, int(p.bounds.Y)+4)
}

// drawToasts renders live toasts stacked from the panel's bottom edge.
func (p *Panel) drawToasts(screen *ebiten.Image) {
	const toastHeight = 20
	y := p.bounds.Y + p.bounds.Height - toastHeight
	for _, toast := range p.toasts.Active() {
		bg := toastColors[toast.Severity]
		bg.A = uint8(float64(bg.A) * toast.Alpha)
		vector.DrawFilledRect(screen, float32(p.bounds.X), float32(y),
			float32(p.bounds.Width), toastHeight, bg, false)
		ebitenutil.DebugPrintAt(screen, toast.Message, int(p.bounds.X)+6, int(y)+2)
		y -= toastHeight + 2
	}
}
