package colormap

import (
	"fmt"
	"image/color"
)

// MapClamped looks sample up in table. Samples above maxValue map to
// transparent black; sample == maxValue is still looked up.
//
// table must hold at least maxValue+1 entries.
func MapClamped(sample uint16, table Table, maxValue uint32) color.RGBA {
	if uint32(sample) > maxValue {
		return color.RGBA{}
	}
	return table[sample]
}

// MapUnclamped looks sample up in table without any range check. The caller
// guarantees that table is large enough for every sample it passes.
func MapUnclamped(sample uint16, table Table) color.RGBA {
	return table[sample]
}

// MapGrayscale maps sample linearly onto an opaque gray level, dropping the
// low byte.
func MapGrayscale(sample uint16) color.RGBA {
	d := uint8(sample >> 8)
	return color.RGBA{R: d, G: d, B: d, A: 0xFF}
}

// Mode selects how a Mapper turns samples into colors.
type Mode int

const (
	// ModeTable looks samples up in a color table.
	ModeTable Mode = iota
	// ModeGrayscale maps samples onto a gray ramp and ignores any table.
	ModeGrayscale
)

func (m Mode) String() string {
	switch m {
	case ModeTable:
		return "table"
	case ModeGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the textual form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "table", "histogram":
		return ModeTable, nil
	case "grayscale", "gray":
		return ModeGrayscale, nil
	}
	return 0, fmt.Errorf("colormap: unknown mode %q", s)
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithTable sets the color table used in ModeTable.
func WithTable(t Table) Option {
	return func(m *Mapper) {
		m.table = t
	}
}

// WithClamp enables or disables the maxValue range check.
func WithClamp(clamp bool) Option {
	return func(m *Mapper) {
		m.clamp = clamp
	}
}

// WithMaxValue sets the inclusive upper bound for clamped lookups.
func WithMaxValue(maxValue uint32) Option {
	return func(m *Mapper) {
		m.maxValue = maxValue
	}
}

// WithMode selects the mapping mode.
func WithMode(mode Mode) Option {
	return func(m *Mapper) {
		m.mode = mode
	}
}

// Mapper converts depth samples to colors. A Mapper is immutable once built and
// can be shared between goroutines, as long as the caller does not write to the
// borrowed table while frames are in flight.
type Mapper struct {
	mode     Mode
	table    Table
	clamp    bool
	maxValue uint32
}

// NewMapper builds a Mapper. Without options it performs a clamped table lookup
// with DefaultMaxValue, so WithTable is required unless ModeGrayscale is chosen.
//
// The table size is validated here so that Map never indexes out of bounds:
// a clamped mapper needs min(maxValue, 65535)+1 entries and an unclamped mapper
// needs FullTableSize entries.
func NewMapper(opts ...Option) (*Mapper, error) {
	m := &Mapper{
		mode:     ModeTable,
		clamp:    true,
		maxValue: DefaultMaxValue,
	}
	for _, o := range opts {
		o(m)
	}

	switch m.mode {
	case ModeGrayscale:
		return m, nil
	case ModeTable:
	default:
		return nil, fmt.Errorf("colormap: unsupported mode %s", m.mode)
	}

	if m.table == nil {
		return nil, ErrNoTable
	}

	required := FullTableSize
	if m.clamp && m.maxValue < FullTableSize {
		required = int(m.maxValue) + 1
	}
	if len(m.table) < required {
		return nil, fmt.Errorf("%w: have %d entries, need %d", ErrTableTooSmall, len(m.table), required)
	}

	return m, nil
}

// Mode returns the configured mapping mode.
func (m *Mapper) Mode() Mode { return m.mode }

// MaxValue returns the clamp threshold.
func (m *Mapper) MaxValue() uint32 { return m.maxValue }

// Clamped reports whether samples above MaxValue are replaced by transparent black.
func (m *Mapper) Clamped() bool { return m.clamp }

// Map converts a single sample.
func (m *Mapper) Map(sample uint16) color.RGBA {
	switch {
	case m.mode == ModeGrayscale:
		return MapGrayscale(sample)
	case m.clamp:
		return MapClamped(sample, m.table, m.maxValue)
	default:
		return MapUnclamped(sample, m.table)
	}
}

// Lookup is like Map but reports samples that would hit the clamp fallback as
// ErrSampleOutOfRange instead of returning transparent black.
func (m *Mapper) Lookup(sample uint16) (color.RGBA, error) {
	if m.mode == ModeGrayscale {
		return MapGrayscale(sample), nil
	}
	if m.clamp && uint32(sample) > m.maxValue {
		return color.RGBA{}, ErrSampleOutOfRange
	}
	return m.table.At(sample)
}
