package curve

// Assemble generates the full integer sequence described by spec.
//
// The effective range receives the shaped and blended samples truncated toward zero. Indexes
// before it hold StartValue and indexes after it hold EndValue. Values are not clamped to the
// editing band, so a spec with start or end outside [6, 98] produces values outside it too
func Assemble(spec Spec) ([]int, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	n := spec.PointCount
	startIdx, endIdx := EffectiveRange(n, spec.RangeStartPct, spec.RangeEndPct)
	effective := endIdx - startIdx

	leadIn := clampLead(spec.LeadInSize, effective/3)
	leadOut := clampLead(spec.LeadOutSize, effective/3)

	start := float64(spec.StartValue)
	end := float64(spec.EndValue)

	samples := Shape(spec.Kind, start, end, effective, spec.PowerExponent)
	if leadIn > 0 || leadOut > 0 {
		samples = Blend(samples, start, end, leadIn, leadOut)
	}

	seq := make([]int, n)
	for i := range startIdx {
		seq[i] = spec.StartValue
	}
	for i, v := range samples {
		seq[startIdx+i] = int(v)
	}
	for i := endIdx; i < n; i++ {
		seq[i] = spec.EndValue
	}

	return seq, nil
}
