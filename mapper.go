package starboard

// Normalize maps a raw device coordinate into the reference rectangle,
// returning a point with both components in [0, 1]. The second return value
// is false when the coordinate falls outside the rectangle or the rectangle
// has no area; callers must discard such events with no side effect.
func Normalize(ref Rect, cx, cy float64) (NodePoint, bool) {
	if ref.Width <= 0 || ref.Height <= 0 {
		return NodePoint{}, false
	}
	p := NodePoint{
		X: (cx - ref.X) / ref.Width,
		Y: (cy - ref.Y) / ref.Height,
	}
	if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return NodePoint{}, false
	}
	return p, true
}

// Denormalize converts a normalized point back to device coordinates using
// the same reference rectangle Normalize mapped through.
func Denormalize(ref Rect, p NodePoint) (float64, float64) {
	return ref.X + p.X*ref.Width, ref.Y + p.Y*ref.Height
}
