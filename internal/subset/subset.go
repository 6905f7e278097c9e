package subset

import (
	"sort"
	"strconv"
	"strings"
)

// Subset is a canonical set of attribute indices: ascending, no duplicates.
type Subset []int

func New(attrs ...int) Subset {
	var result = make(Subset, len(attrs))
	copy(result, attrs)
	sort.Ints(result)
	var n = 0
	for i, a := range result {
		if i > 0 && a == result[n-1] {
			continue
		}
		result[n] = a
		n++
	}
	return result[:n]
}

func (s Subset) Len() int {
	return len(s)
}

func (s Subset) Contains(attr int) bool {
	var i = sort.SearchInts(s, attr)
	return i < len(s) && s[i] == attr
}

// With returns a new subset that also contains attr. s is not modified.
func (s Subset) With(attr int) Subset {
	if s.Contains(attr) {
		return s.clone()
	}
	var i = sort.SearchInts(s, attr)
	var result = make(Subset, 0, len(s)+1)
	result = append(result, s[:i]...)
	result = append(result, attr)
	result = append(result, s[i:]...)
	return result
}

func (s Subset) Equal(other Subset) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Key is a stable string form used for caches and lookup tables.
func (s Subset) Key() string {
	var sb strings.Builder
	for i, a := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(a))
	}
	return sb.String()
}

func (s Subset) String() string {
	return "{" + strings.ReplaceAll(s.Key(), ",", ", ") + "}"
}

func (s Subset) clone() Subset {
	var result = make(Subset, len(s))
	copy(result, s)
	return result
}
