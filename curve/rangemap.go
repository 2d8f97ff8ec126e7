package curve

// EffectiveRange maps the percentage range onto [startIdx, endIdx) of an n-point sequence.
// Percentages are not validated; callers get ordered bounds only from ordered input
func EffectiveRange(n, startPct, endPct int) (startIdx, endIdx int) {
	return n * startPct / 100, n * endPct / 100
}
