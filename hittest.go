package starboard

// HitIndex finds the node whose marker contains the tap at device coordinates
// (cx, cy). Points are converted back to device space through ref and scanned
// in index order; the first one within HitRadius pixels wins. Returns -1 when
// no marker is hit, which routes the tap to the creation path.
func HitIndex(ref Rect, points []NodePoint, cx, cy float64) int {
	return HitIndexRadius(ref, points, cx, cy, HitRadius)
}

// HitIndexRadius is HitIndex with an explicit pixel radius.
func HitIndexRadius(ref Rect, points []NodePoint, cx, cy, radius float64) int {
	r2 := radius * radius
	for i, p := range points {
		px, py := Denormalize(ref, p)
		dx := cx - px
		dy := cy - py
		if dx*dx+dy*dy <= r2 {
			return i
		}
	}
	return -1
}
