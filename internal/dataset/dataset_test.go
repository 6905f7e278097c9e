package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherARFF = `% classic toy dataset
@relation weather

@attribute outlook {sunny, overcast, rainy}
@attribute temperature numeric
@attribute 'relative humidity' real
@attribute windy {TRUE, FALSE}
@attribute play {yes, no}

@data
sunny,85,85,FALSE,no
sunny,80,90,TRUE,no
overcast,83,86,FALSE,yes
rainy,70,?,FALSE,yes
'rainy',68,80,FALSE,yes
`

func TestLoadARFF(t *testing.T) {
	var ds, err = LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)

	assert.Equal(t, "weather", ds.Relation)
	assert.Equal(t, 5, ds.NumAttributes())
	assert.Equal(t, 5, ds.NumRows())
	assert.Equal(t, "relative humidity", ds.Attributes[2].Name)
	assert.Equal(t, Nominal, ds.Attributes[0].Kind)
	assert.Equal(t, []string{"sunny", "overcast", "rainy"}, ds.Attributes[0].Values)
	assert.Equal(t, Numeric, ds.Attributes[1].Kind)

	assert.Equal(t, []float64{0, 85, 85, 1, 1}, ds.Rows[0])
	assert.True(t, math.IsNaN(ds.Rows[3][2]))
	assert.Equal(t, 2.0, ds.Rows[4][0])
}

func TestLoadARFFErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no data", "@relation r\n@attribute a numeric\n"},
		{"data before attributes", "@relation r\n@data\n1\n"},
		{"unknown nominal", "@attribute a {x,y}\n@data\nz\n"},
		{"bad number", "@attribute a numeric\n@data\nabc\n"},
		{"width mismatch", "@attribute a numeric\n@attribute b numeric\n@data\n1\n"},
		{"string type", "@attribute a string\n@data\nx\n"},
		{"sparse", "@attribute a numeric\n@data\n{0 1}\n"},
		{"bad keyword", "@foo bar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadARFF(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestLoadCSV(t *testing.T) {
	var input = "x,y,label\n1.5,a,pos\n2,b,neg\n?,a,pos\n"
	var ds, err = LoadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Numeric, ds.Attributes[0].Kind)
	assert.Equal(t, Nominal, ds.Attributes[1].Kind)
	assert.Equal(t, []string{"pos", "neg"}, ds.Attributes[2].Values)
	assert.True(t, math.IsNaN(ds.Rows[2][0]))
	assert.Equal(t, []float64{2, 1, 1}, ds.Rows[1])
}

func TestLoadByExtension(t *testing.T) {
	var dir = t.TempDir()
	var arffPath = filepath.Join(dir, "weather.arff")
	require.NoError(t, os.WriteFile(arffPath, []byte(weatherARFF), 0o644))
	ds, err := Load(arffPath)
	require.NoError(t, err)
	assert.Equal(t, 5, ds.NumRows())

	var csvPath = filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,x\n"), 0o644))
	ds, err = Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "points", ds.Relation)

	_, err = Load(filepath.Join(dir, "data.json"))
	assert.Error(t, err)
}

func TestClassAndCandidates(t *testing.T) {
	var ds, err = LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)

	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"", 4, false},
		{"play", 4, false},
		{"windy", 3, false},
		{"0", 0, false},
		{"9", 0, true},
		{"missing", 0, true},
	}
	for _, tt := range tests {
		var got, err = ds.ClassIndex(tt.name)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	assert.Equal(t, []int{0, 1, 2, 3}, ds.Candidates(4))
	assert.Equal(t, []int{1, 2, 3, 4}, ds.Candidates(0))

	labels, classes, err := ds.Labels(4)
	require.NoError(t, err)
	assert.Equal(t, 2, classes)
	assert.Equal(t, []int{1, 1, 0, 0, 0}, labels)

	_, _, err = ds.Labels(1)
	assert.Error(t, err, "numeric class")
}

func TestFeaturesAndNames(t *testing.T) {
	var ds, err = LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)

	var x = ds.Features(subset.New(3, 1))
	require.Len(t, x, 5)
	assert.Equal(t, []float64{85, 1}, x[0])
	assert.Equal(t, []float64{80, 0}, x[1])
	assert.Equal(t, []string{"temperature", "windy"}, ds.Names([]int{1, 3}))
}

func TestFingerprint(t *testing.T) {
	a, err := LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)
	b, err := LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Rows[0][1] = 86
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLookup(t *testing.T) {
	var ds, err = LoadARFF(strings.NewReader(weatherARFF))
	require.NoError(t, err)

	indices, err := ds.Lookup([]string{"windy", "relative humidity"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, indices)

	_, err = ds.Lookup([]string{"outlook", "pressure"})
	assert.Error(t, err)
}
