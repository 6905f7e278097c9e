package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Load reads an .arff or .csv file.
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ds *Dataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".arff":
		ds, err = LoadARFF(file)
	case ".csv":
		ds, err = LoadCSV(file)
		if ds != nil {
			ds.Relation = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	if err := ds.validate(); err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return ds, nil
}

// LoadCSV reads a table whose first row holds attribute names. A column is
// numeric when every present value parses as a number, nominal otherwise;
// nominal values are indexed in order of first appearance.
func LoadCSV(r io.Reader) (*Dataset, error) {
	var reader = csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv: missing header")
	}

	var header = records[0]
	var body = records[1:]
	var ds = &Dataset{
		Attributes: make([]Attribute, len(header)),
		Rows:       make([][]float64, len(body)),
	}
	for i := range ds.Rows {
		ds.Rows[i] = make([]float64, len(header))
	}

	for col, name := range header {
		var attr = Attribute{Name: strings.TrimSpace(name), Kind: Numeric}
		for _, record := range body {
			if !isMissing(record[col]) {
				if _, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64); err != nil {
					attr.Kind = Nominal
					break
				}
			}
		}

		for i, record := range body {
			var field = strings.TrimSpace(record[col])
			if isMissing(field) {
				ds.Rows[i][col] = math.NaN()
				continue
			}
			if attr.Kind == Numeric {
				ds.Rows[i][col], _ = strconv.ParseFloat(field, 64)
				continue
			}
			var index, found = attr.ValueIndex(field)
			if !found {
				index = len(attr.Values)
				attr.Values = append(attr.Values, field)
			}
			ds.Rows[i][col] = float64(index)
		}
		ds.Attributes[col] = attr
	}
	return ds, nil
}

func isMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == "?"
}
