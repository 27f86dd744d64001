package types

import "strconv"

// Value is a centipawn score, from the perspective documented by each
// function that returns one (usually side-to-move).
type Value int16

const (
	// ValueZero is a draw score.
	ValueZero Value = 0
	// CheckmateValue is the magnitude of a forced-mate score; search returns
	// it unadjusted at every mated node, so mate distance is not encoded.
	CheckmateValue Value = 20000
	// ValueInfinite bounds the alpha-beta window at the root.
	ValueInfinite Value = 32000
	// ValueNone marks "no value computed" in contexts (e.g. TT misses)
	// where ValueZero is a legitimate score.
	ValueNone Value = 32001
)

func (v Value) String() string {
	return "cp " + strconv.Itoa(int(v))
}

// IsCheckmateValue reports whether v represents a forced mate (of either side).
func (v Value) IsCheckmateValue() bool {
	return v > CheckmateValue-1000 || v < -CheckmateValue+1000
}
