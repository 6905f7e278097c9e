package subset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanonical(t *testing.T) {
	tests := []struct {
		name  string
		attrs []int
		want  Subset
	}{
		{"empty", nil, Subset{}},
		{"sorted", []int{1, 2, 3}, Subset{1, 2, 3}},
		{"unsorted", []int{7, 3, 1}, Subset{1, 3, 7}},
		{"duplicates", []int{4, 1, 4, 1}, Subset{1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.attrs...))
		})
	}
}

func TestWithDoesNotAlias(t *testing.T) {
	var s = make(Subset, 2, 8)
	s[0], s[1] = 1, 5
	var a = s.With(3)
	var b = s.With(9)
	assert.Equal(t, Subset{1, 3, 5}, a)
	assert.Equal(t, Subset{1, 5, 9}, b)
	assert.Equal(t, Subset{1, 5}, s)
	assert.Equal(t, Subset{1, 5}, s.With(5))
}

func TestKeyAndString(t *testing.T) {
	var s = New(7, 1, 3)
	assert.Equal(t, "1,3,7", s.Key())
	assert.Equal(t, "{1, 3, 7}", s.String())
	assert.Equal(t, "{}", New().String())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))
}

func TestEncoderRoundTrip(t *testing.T) {
	var enc, err = NewEncoder([]int{9, 2, 5})
	require.NoError(t, err)
	assert.Equal(t, 3, enc.Width())
	assert.Equal(t, uint64(7), enc.Total())

	tests := []struct {
		mask uint64
		want Subset
	}{
		{0b001, Subset{2}},
		{0b010, Subset{5}},
		{0b100, Subset{9}},
		{0b101, Subset{2, 9}},
		{0b111, Subset{2, 5, 9}},
	}
	for _, tt := range tests {
		var got = enc.Decode(tt.mask)
		assert.Equal(t, tt.want, got)
		mask, err := enc.Encode(got)
		require.NoError(t, err)
		assert.Equal(t, tt.mask, mask)
	}

	_, err = enc.Encode(Subset{3})
	assert.Error(t, err)
}

func TestEncoderCapacity(t *testing.T) {
	var candidates = make([]int, 64)
	for i := range candidates {
		candidates[i] = i + 1
	}
	_, err := NewEncoder(candidates)
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 64, capErr.Candidates)

	enc, err := NewEncoder(candidates[:63])
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63-1, enc.Total())

	_, err = NewEncoder(nil)
	assert.ErrorAs(t, err, &capErr)

	_, err = NewEncoder([]int{1, 2, 1})
	assert.ErrorAs(t, err, &capErr)
}
