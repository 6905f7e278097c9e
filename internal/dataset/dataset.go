package dataset

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/AttrSelect/internal/subset"
	farm "github.com/dgryski/go-farm"
	"github.com/pkg/errors"
)

type Kind int

const (
	Numeric Kind = iota
	Nominal
)

func (k Kind) String() string {
	if k == Nominal {
		return "nominal"
	}
	return "numeric"
}

type Attribute struct {
	Name   string
	Kind   Kind
	Values []string // nominal values; a row stores the value index
}

func (a *Attribute) ValueIndex(s string) (int, bool) {
	for i, v := range a.Values {
		if v == s {
			return i, true
		}
	}
	return 0, false
}

// Dataset is a dense table. Missing values are NaN.
type Dataset struct {
	Relation   string
	Attributes []Attribute
	Rows       [][]float64
}

func (d *Dataset) NumAttributes() int {
	return len(d.Attributes)
}

func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// ClassIndex resolves the class attribute by name or by zero-based index.
// An empty name selects the last attribute.
func (d *Dataset) ClassIndex(name string) (int, error) {
	if len(d.Attributes) == 0 {
		return 0, errors.New("dataset has no attributes")
	}
	if name == "" {
		return len(d.Attributes) - 1, nil
	}
	for i := range d.Attributes {
		if d.Attributes[i].Name == name {
			return i, nil
		}
	}
	if index, err := strconv.Atoi(name); err == nil {
		if index < 0 || index >= len(d.Attributes) {
			return 0, fmt.Errorf("class index %d out of range [0, %d)", index, len(d.Attributes))
		}
		return index, nil
	}
	return 0, fmt.Errorf("class attribute %q not found", name)
}

// Candidates lists every attribute index except the class.
func (d *Dataset) Candidates(class int) []int {
	var result = make([]int, 0, len(d.Attributes))
	for i := range d.Attributes {
		if i != class {
			result = append(result, i)
		}
	}
	return result
}

// Lookup resolves attribute names to their indices, keeping the given order.
func (d *Dataset) Lookup(names []string) ([]int, error) {
	var result = make([]int, 0, len(names))
	for _, name := range names {
		var index = -1
		for i := range d.Attributes {
			if d.Attributes[i].Name == name {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("attribute %q not found", name)
		}
		result = append(result, index)
	}
	return result, nil
}

// Labels returns the class value of every row and the number of classes.
func (d *Dataset) Labels(class int) ([]int, int, error) {
	if class < 0 || class >= len(d.Attributes) {
		return nil, 0, fmt.Errorf("class index %d out of range", class)
	}
	var attr = &d.Attributes[class]
	if attr.Kind != Nominal {
		return nil, 0, fmt.Errorf("class attribute %q must be nominal", attr.Name)
	}
	var labels = make([]int, len(d.Rows))
	for i, row := range d.Rows {
		var v = row[class]
		if math.IsNaN(v) {
			return nil, 0, fmt.Errorf("row %d: class value is missing", i+1)
		}
		labels[i] = int(v)
	}
	return labels, len(attr.Values), nil
}

// Features copies the columns of attrs into a row-major matrix.
func (d *Dataset) Features(attrs subset.Subset) [][]float64 {
	var result = make([][]float64, len(d.Rows))
	var data = make([]float64, len(d.Rows)*len(attrs))
	for i, row := range d.Rows {
		var x = data[i*len(attrs) : (i+1)*len(attrs)]
		for j, a := range attrs {
			x[j] = row[a]
		}
		result[i] = x
	}
	return result
}

// Names maps attribute indices to attribute names.
func (d *Dataset) Names(attrs []int) []string {
	var result = make([]string, len(attrs))
	for i, a := range attrs {
		if a >= 0 && a < len(d.Attributes) {
			result[i] = d.Attributes[a].Name
		} else {
			result[i] = strconv.Itoa(a)
		}
	}
	return result
}

// Fingerprint identifies the dataset content. It is used to namespace
// persisted scores.
func (d *Dataset) Fingerprint() uint64 {
	var sb strings.Builder
	for _, attr := range d.Attributes {
		sb.WriteString(attr.Name)
		sb.WriteByte(0)
		sb.WriteString(attr.Kind.String())
		for _, v := range attr.Values {
			sb.WriteByte(0)
			sb.WriteString(v)
		}
		sb.WriteByte(1)
	}
	var buf [8]byte
	for _, row := range d.Rows {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			sb.Write(buf[:])
		}
	}
	return farm.Fingerprint64([]byte(sb.String()))
}

func (d *Dataset) validate() error {
	for i, row := range d.Rows {
		if len(row) != len(d.Attributes) {
			return fmt.Errorf("row %d: expected %d values, got %d", i+1, len(d.Attributes), len(row))
		}
	}
	return nil
}
