// Package colormap maps 16-bit depth samples to RGBA colors, either through a
// color table indexed by the sample value or through a linear grayscale ramp.
package colormap

import (
	"errors"
	"image/color"
)

// DefaultMaxValue is the inclusive upper bound used by the clamped lookup when
// no other threshold is configured.
const DefaultMaxValue uint32 = 3000

// FullTableSize is the number of entries a table needs to be indexable by every
// possible 16-bit sample.
const FullTableSize = 1 << 16

var (
	// ErrSampleOutOfRange is returned by checked lookups when a sample is above
	// the configured threshold or outside of the table.
	ErrSampleOutOfRange = errors.New("colormap: sample out of range")
	// ErrNoTable is returned when a table lookup is configured without a table.
	ErrNoTable = errors.New("colormap: table mode requires a color table")
	// ErrTableTooSmall is returned when a table cannot hold every sample the
	// mapper may look up.
	ErrTableTooSmall = errors.New("colormap: color table too small")
)

// Table is a color lookup table indexed by depth sample. Tables are owned by the
// caller; mappers borrow them and never modify them.
type Table []color.RGBA

// NewTable allocates a transparent black table with n entries.
func NewTable(n int) Table {
	return make(Table, n)
}

// Len returns the number of entries in t.
func (t Table) Len() int {
	return len(t)
}

// At returns the color for sample, or ErrSampleOutOfRange if t has no entry for it.
func (t Table) At(sample uint16) (color.RGBA, error) {
	if int(sample) >= len(t) {
		return color.RGBA{}, ErrSampleOutOfRange
	}
	return t[sample], nil
}

// Extend returns a copy of t grown to n entries, repeating its last entry.
// It is used to turn a clamped table into one an unclamped mapper accepts.
func (t Table) Extend(n int) Table {
	if n <= len(t) {
		return append(Table(nil), t...)
	}
	out := NewTable(n)
	copy(out, t)
	if len(t) > 0 {
		last := t[len(t)-1]
		for i := len(t); i < n; i++ {
			out[i] = last
		}
	}
	return out
}
