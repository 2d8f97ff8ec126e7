package curve

// Blend returns a copy of shaped with its first leadIn samples replaced by a smoothstep from
// start to the original shaped[leadIn-1], and its last leadOut samples replaced by a smoothstep
// from the original shaped[len-leadOut] to end. Both sizes are clamped to len/3 so the lead-in,
// interior and lead-out never overlap
func Blend(shaped []float64, start, end float64, leadIn, leadOut int) []float64 {
	out := make([]float64, len(shaped))
	copy(out, shaped)

	limit := len(shaped) / 3
	leadIn = clampLead(leadIn, limit)
	leadOut = clampLead(leadOut, limit)

	// anchors come from the unmodified shape
	var inAnchor, outAnchor float64
	if leadIn > 0 {
		inAnchor = shaped[leadIn-1]
	}
	if leadOut > 0 {
		outAnchor = shaped[len(shaped)-leadOut]
	}

	for i, t := range unitSamples(leadIn) {
		out[i] = start + (inAnchor-start)*smoothstep(t)
	}

	offset := len(out) - leadOut
	for i, t := range unitSamples(leadOut) {
		out[offset+i] = outAnchor + (end-outAnchor)*smoothstep(t)
	}

	return out
}

func clampLead(size, limit int) int {
	return max(0, min(size, limit))
}
