package subset

import (
	"fmt"
	"math/bits"
	"sort"
)

// MaxCandidates is the widest mask an Encoder accepts. Bit 63 stays reserved.
const MaxCandidates = 63

// CapacityError reports a candidate set that cannot be encoded as a mask.
type CapacityError struct {
	Candidates int
	Reason     string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot encode %d candidate attributes: %s", e.Candidates, e.Reason)
}

// Encoder maps non-empty subsets of a fixed candidate list to uint64 masks.
// Bit i of a mask is set iff the i-th smallest candidate is included.
type Encoder struct {
	candidates []int
	position   map[int]uint
}

func NewEncoder(candidates []int) (*Encoder, error) {
	if len(candidates) == 0 {
		return nil, &CapacityError{Candidates: 0, Reason: "no candidates"}
	}
	if len(candidates) > MaxCandidates {
		return nil, &CapacityError{
			Candidates: len(candidates),
			Reason:     fmt.Sprintf("at most %d fit in a mask", MaxCandidates),
		}
	}
	var sorted = make([]int, len(candidates))
	copy(sorted, candidates)
	sort.Ints(sorted)
	var position = make(map[int]uint, len(sorted))
	for i, a := range sorted {
		if _, found := position[a]; found {
			return nil, &CapacityError{
				Candidates: len(candidates),
				Reason:     fmt.Sprintf("duplicate attribute %d", a),
			}
		}
		position[a] = uint(i)
	}
	return &Encoder{
		candidates: sorted,
		position:   position,
	}, nil
}

func (e *Encoder) Width() int {
	return len(e.candidates)
}

// Total is the number of non-empty masks, 2^k - 1.
func (e *Encoder) Total() uint64 {
	return uint64(1)<<uint(len(e.candidates)) - 1
}

func (e *Encoder) Decode(mask uint64) Subset {
	var result = make(Subset, 0, bits.OnesCount64(mask))
	for rem := mask; rem != 0; rem &= rem - 1 {
		var i = bits.TrailingZeros64(rem)
		if i >= len(e.candidates) {
			break
		}
		result = append(result, e.candidates[i])
	}
	return result
}

func (e *Encoder) Encode(s Subset) (uint64, error) {
	var mask uint64
	for _, a := range s {
		var i, found = e.position[a]
		if !found {
			return 0, fmt.Errorf("attribute %d is not a candidate", a)
		}
		mask |= 1 << i
	}
	return mask, nil
}
