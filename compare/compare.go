package compare

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Series is one histogram artifact read back from its text form: bin centers
// and the accumulated value per bin. Both artifact flavors (profile and
// spectrum) share this shape.
type Series struct {
	Centers []float64
	Values  []float64
}

// Len returns the number of bins in the series.
func (s Series) Len() int { return len(s.Values) }

// Sum returns the plain sum of all bin values. For a spectrum this is the
// total exit count.
func (s Series) Sum() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Integral returns the sum of all bin values scaled by the bin width derived
// from the first two centers. For a deposition profile this is the total
// deposited energy. A single-bin series uses width 1.
func (s Series) Integral() float64 {
	width := 1.0
	if len(s.Centers) > 1 {
		width = s.Centers[1] - s.Centers[0]
	}
	return s.Sum() * width
}

// ReadSeries parses an artifact stream: lines starting with '#' are
// comments, every other non-empty line carries two whitespace separated
// columns (bin center, value).
func ReadSeries(r io.Reader) (Series, error) {
	var series Series

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return Series{}, fmt.Errorf("line %d: expected 2 columns, got %d", lineNo, len(fields))
		}
		center, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return Series{}, fmt.Errorf("line %d: parse bin center: %w", lineNo, err)
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Series{}, fmt.Errorf("line %d: parse value: %w", lineNo, err)
		}

		series.Centers = append(series.Centers, center)
		series.Values = append(series.Values, value)
	}
	if err := scanner.Err(); err != nil {
		return Series{}, fmt.Errorf("read artifact: %w", err)
	}

	return series, nil
}

// ReadFile reads an artifact from disk.
func ReadFile(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	return ReadSeries(f)
}

// Comparison summarizes how a test series deviates from a reference on the
// same bin grid.
type Comparison struct {
	// Ratios holds test/reference per bin. Bins where the reference is zero
	// report a ratio of 1 so empty regions do not dominate the comparison.
	Ratios []float64
	// MaxRelDiff is the largest |ratio - 1| over bins with a nonzero
	// reference.
	MaxRelDiff float64
	// RefSum and TestSum are the plain value sums of both series.
	RefSum  float64
	TestSum float64
}

// withinSlack absorbs the rounding picked up by the ratio arithmetic
// (11.0/10.0 is one ulp above 1.1), so a deviation exactly at the tolerance
// still passes.
const withinSlack = 1e-9

// Within reports whether every populated bin agrees with the reference to
// the given relative tolerance.
func (c *Comparison) Within(tol float64) bool {
	return c.MaxRelDiff <= tol+withinSlack*math.Max(tol, 1)
}

// centerTolerance bounds the relative disagreement allowed between bin
// centers before two series are considered to live on different grids.
const centerTolerance = 1e-9

// Compare computes per-bin ratios of test against reference. Both series
// must share the same bin grid; comparing differently binned results is a
// configuration error, not something to paper over with interpolation.
func Compare(ref, test Series) (*Comparison, error) {
	if ref.Len() != test.Len() {
		return nil, fmt.Errorf("grid mismatch: %d vs %d bins", ref.Len(), test.Len())
	}
	for i := range ref.Centers {
		if !closeEnough(ref.Centers[i], test.Centers[i]) {
			return nil, fmt.Errorf("grid mismatch at bin %d: centers %g vs %g", i, ref.Centers[i], test.Centers[i])
		}
	}

	cmp := &Comparison{
		Ratios:  make([]float64, ref.Len()),
		RefSum:  ref.Sum(),
		TestSum: test.Sum(),
	}
	for i := range ref.Values {
		if ref.Values[i] == 0 {
			cmp.Ratios[i] = 1.0
			continue
		}
		ratio := test.Values[i] / ref.Values[i]
		cmp.Ratios[i] = ratio
		if diff := math.Abs(ratio - 1); diff > cmp.MaxRelDiff {
			cmp.MaxRelDiff = diff
		}
	}

	return cmp, nil
}

func closeEnough(a, b float64) bool {
	if a == b {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= centerTolerance*scale
}
