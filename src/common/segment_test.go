package common

import (
	"bts/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seqptr(v int32) *int32 { return &v }

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b Segment
		want bool
	}{
		{"disjoint before", Segment{0, 2}, Segment{2, 4}, false},
		{"disjoint after", Segment{2, 4}, Segment{0, 2}, false},
		{"partial overlap", Segment{1, 3}, Segment{2, 4}, true},
		{"containment", Segment{0, 4}, Segment{1, 2}, true},
		{"contained", Segment{1, 2}, Segment{0, 4}, true},
		{"identical", Segment{1, 3}, Segment{1, 3}, true},
		{"shared boundary only", Segment{0, 3}, Segment{3, 5}, false},
		{"whole route vs anything", Segment{SequenceUnboundedLow, SequenceUnboundedHigh}, Segment{5, 6}, true},
		{"two whole routes", Segment{SequenceUnboundedLow, SequenceUnboundedHigh}, Segment{SequenceUnboundedLow, SequenceUnboundedHigh}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.a.Overlaps(c.b))
			assert.Equal(t, c.want, c.b.Overlaps(c.a), "overlap must be symmetric")
		})
	}
}

func TestSegmentFromSequences(t *testing.T) {
	t.Run("both bounds missing means the whole route", func(t *testing.T) {
		seg, err := segmentFromSequences(nil, nil)
		assert.Nil(t, err)
		assert.Equal(t, SequenceUnboundedLow, seg.From)
		assert.Equal(t, SequenceUnboundedHigh, seg.To)
		assert.False(t, seg.Bounded())
	})

	t.Run("only boarding bound set", func(t *testing.T) {
		seg, err := segmentFromSequences(seqptr(3), nil)
		assert.Nil(t, err)
		assert.Equal(t, int32(3), seg.From)
		assert.Equal(t, SequenceUnboundedHigh, seg.To)
	})

	t.Run("only alighting bound set", func(t *testing.T) {
		seg, err := segmentFromSequences(nil, seqptr(5))
		assert.Nil(t, err)
		assert.Equal(t, SequenceUnboundedLow, seg.From)
		assert.Equal(t, int32(5), seg.To)
	})

	t.Run("both bounds set", func(t *testing.T) {
		seg, err := segmentFromSequences(seqptr(2), seqptr(6))
		assert.Nil(t, err)
		assert.Equal(t, Segment{From: 2, To: 6}, seg)
		assert.True(t, seg.Bounded())
	})

	t.Run("inverted bounds are a validation error", func(t *testing.T) {
		_, err := segmentFromSequences(seqptr(6), seqptr(2))
		var verr types.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("zero-length segment is a validation error", func(t *testing.T) {
		_, err := segmentFromSequences(seqptr(4), seqptr(4))
		var verr types.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}
