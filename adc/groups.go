package adc

// bitmaskTest reports whether bit i (0-15) is set in a 16-pixel group
// presence/selection mask.
func bitmaskTest(mask uint16, i int) bool {
	return mask&(1<<uint(i)) != 0
}

// groupBounds returns the [start, end) pixel range for group g out of
// numPixels total, the last group possibly shorter than pixelsPerGroup.
func groupBounds(g, numPixels int) (int, int) {
	start := g * pixelsPerGroup
	end := start + pixelsPerGroup

	if end > numPixels {
		end = numPixels
	}

	return start, end
}

func numGroups(numPixels int) int {
	return (numPixels + pixelsPerGroup - 1) / pixelsPerGroup
}
