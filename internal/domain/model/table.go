package model

// Table is an immutable batch of generated plays. Derivation helpers
// return fresh slices and never mutate the receiver.
type Table []Play

// Validate checks every play in the table.
func (t Table) Validate() error {
	for _, p := range t {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns the plays matching pred, in original order.
func (t Table) Filter(pred func(Play) bool) Table {
	out := make(Table, 0, len(t))
	for _, p := range t {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// Pressured returns the plays where pressure was applied.
func (t Table) Pressured() Table {
	return t.Filter(func(p Play) bool { return p.PressureApplied })
}

// Unpressured returns the plays where no pressure was applied.
func (t Table) Unpressured() Table {
	return t.Filter(func(p Play) bool { return !p.PressureApplied })
}

// YardsGained returns the yards-gained column as a slice.
func (t Table) YardsGained() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.YardsGained
	}
	return out
}

// TimesToThrow returns the time-to-throw column as a slice.
func (t Table) TimesToThrow() []float64 {
	out := make([]float64, len(t))
	for i, p := range t {
		out[i] = p.TimeToThrow
	}
	return out
}
