package tlnn

// Step is a snapshot taken after one per-sample update.
//
// W, U and V hold the updated parameters; Z, H and N the forward values the
// gradients were computed from.
type Step struct {
	W, U, V []float64
	Z, H    []float64
	N       float64

	DW, DU, DV []float64
	DZ, DH     []float64
	DN         float64
}

// EpochTrace holds the steps of one epoch in sample order.
type EpochTrace struct {
	Steps []Step
}

// Trace is the training history recorded when Config.Trace is set.
type Trace struct {
	Epochs []EpochTrace
}

func (tr *Trace) beginEpoch() {
	if tr == nil {
		return
	}
	tr.Epochs = append(tr.Epochs, EpochTrace{})
}

func (tr *Trace) record(s Step) {
	if tr == nil {
		return
	}
	last := &tr.Epochs[len(tr.Epochs)-1]
	last.Steps = append(last.Steps, s)
}
