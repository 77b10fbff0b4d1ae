package widget

// FitRows returns the height, in rows, an input showing lines of content
// should take: content height clamped to [min, max]. A max below min is
// treated as min.
func FitRows(lines, min, max int) int {
	if max < min {
		max = min
	}
	switch {
	case lines < min:
		return min
	case lines > max:
		return max
	default:
		return lines
	}
}
