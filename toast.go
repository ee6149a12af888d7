package starboard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ToastSeverity selects the visual treatment of a toast.
type ToastSeverity uint8

const (
	ToastInfo    ToastSeverity = iota // neutral notice
	ToastWarning                      // caution, e.g. credit denial
	ToastError                        // failure, e.g. missing reference image
)

// Toast hold and fade durations, in seconds.
const (
	toastHold = 2.2
	toastFade = 0.4
)

// Toast is one transient notice with its current fade alpha.
type Toast struct {
	Message  string
	Severity ToastSeverity
	Alpha    float64
}

// activeToast tracks hold time and the fade tween for a displayed toast.
type activeToast struct {
	toast    Toast
	holdLeft float32
	fade     *gween.Tween
	done     bool
}

// ToastQueue displays transient notices, newest last. Toasts hold for a
// fixed time, then fade out. There is no global manager — the owning panel
// calls Update each frame.
type ToastQueue struct {
	items []activeToast
}

// Push enqueues a toast at full alpha.
func (q *ToastQueue) Push(message string, severity ToastSeverity) {
	q.items = append(q.items, activeToast{
		toast:    Toast{Message: message, Severity: severity, Alpha: 1},
		holdLeft: toastHold,
	})
}

// Update advances hold timers and fades by dt seconds, dropping finished
// toasts.
func (q *ToastQueue) Update(dt float32) {
	for i := range q.items {
		item := &q.items[i]
		if item.fade == nil {
			item.holdLeft -= dt
			if item.holdLeft <= 0 {
				item.fade = gween.New(1, 0, toastFade, ease.Linear)
			}
			continue
		}
		alpha, finished := item.fade.Update(dt)
		item.toast.Alpha = float64(alpha)
		if finished {
			item.done = true
		}
	}

	// Compact in place, preserving order.
	live := q.items[:0]
	for _, item := range q.items {
		if !item.done {
			live = append(live, item)
		}
	}
	q.items = live
}

// Active returns the currently displayed toasts, oldest first. The returned
// slice is only valid until the next Update and MUST NOT be mutated.
func (q *ToastQueue) Active() []Toast {
	out := make([]Toast, len(q.items))
	for i, item := range q.items {
		out[i] = item.toast
	}
	return out
}

// Len returns the number of live toasts.
func (q *ToastQueue) Len() int {
	return len(q.items)
}
