package common

import (
	"bts/src/types"
	"math"
)

// Unbounded segment ends are signed sentinels in a total order, never nulls,
// so the overlap predicate has no special cases. The values fit a postgres
// integer column.
const (
	SequenceUnboundedLow  int32 = math.MinInt32
	SequenceUnboundedHigh int32 = math.MaxInt32
)

// Segment is a half-open interval [From, To) over a route's stop sequence
// numbers.
type Segment struct {
	From int32
	To   int32
}

// Overlaps is the single overlap predicate shared by availability checks,
// conflict reasons and the capacity aggregate: [a,b) and [c,d) overlap iff
// a < d && c < b. This also catches full containment either way.
func (s Segment) Overlaps(o Segment) bool {
	return s.From < o.To && o.From < s.To
}

func (s Segment) Bounded() bool {
	return s.From != SequenceUnboundedLow && s.To != SequenceUnboundedHigh
}

// segmentFromSequences normalizes optional sequence bounds. An inverted
// bounded segment is a client error, not a conflict.
func segmentFromSequences(from, to *int32) (Segment, error) {
	seg := Segment{From: SequenceUnboundedLow, To: SequenceUnboundedHigh}
	if from != nil {
		seg.From = *from
	}
	if to != nil {
		seg.To = *to
	}
	if from != nil && to != nil && seg.From >= seg.To {
		return Segment{}, types.ValidationError{Field: "segment", Msg: "boarding stop must precede alighting stop"}
	}
	return seg, nil
}
