package starboard

// syntheticTap is a single injected input event. Device coordinates are used,
// identical to real input, so injected taps exercise the full reconciliation
// pipeline including the dedup guard.
type syntheticTap struct {
	x, y   float64
	touch  bool // native-touch path rather than pointer path
	marker int  // marker tap index, -1 for coordinate taps
}

// InjectTouch queues a native-touch press at device coordinates. Consumed on
// the next Update, ahead of real input.
func (p *Panel) InjectTouch(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticTap{x: x, y: y, touch: true, marker: -1})
}

// InjectPointerTap queues a pointer tap at device coordinates.
func (p *Panel) InjectPointerTap(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticTap{x: x, y: y, marker: -1})
}

// InjectMarkerTap queues a tap directly on marker index, bypassing
// coordinate mapping the way a marker's own control does.
func (p *Panel) InjectMarkerTap(index int) {
	p.injectQueue = append(p.injectQueue, syntheticTap{marker: index})
}

// processInjected drains the inject queue, one event per call, so scripted
// sequences advance frame by frame like real input.
func (p *Panel) processInjected() {
	if len(p.injectQueue) == 0 {
		return
	}
	tap := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	switch {
	case tap.marker >= 0:
		p.route(p.ctrl.MarkerTap(tap.marker), tap.marker)
	case tap.touch:
		p.touchStart(tap.x, tap.y)
	default:
		p.pointerTap(tap.x, tap.y)
	}
}
