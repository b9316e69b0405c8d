package scorer

import "fmt"

var (
	// ErrSizeMismatch is returned when accumulators built for different
	// histogram geometries are merged. Bin-wise addition is only defined for
	// identical axes, so this always indicates a configuration bug.
	ErrSizeMismatch = fmt.Errorf("scorer size mismatch")
)
