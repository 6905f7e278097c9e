package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadARFF reads a dense ARFF file with numeric and nominal attributes.
func LoadARFF(r io.Reader) (*Dataset, error) {
	var ds = &Dataset{}
	var inData bool
	var lineNo int

	var scanner = bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lineNo++
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		if !inData {
			var keyword, rest = splitKeyword(line)
			switch strings.ToLower(keyword) {
			case "@relation":
				ds.Relation = unquote(rest)
			case "@attribute":
				var attr, err = parseAttribute(rest)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				ds.Attributes = append(ds.Attributes, attr)
			case "@data":
				if len(ds.Attributes) == 0 {
					return nil, fmt.Errorf("line %d: @data before any @attribute", lineNo)
				}
				inData = true
			default:
				return nil, fmt.Errorf("line %d: unexpected %q in header", lineNo, keyword)
			}
			continue
		}

		if strings.HasPrefix(line, "{") {
			return nil, fmt.Errorf("line %d: sparse rows are not supported", lineNo)
		}
		var fields, err = splitRow(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNo)
		}
		if len(fields) != len(ds.Attributes) {
			return nil, fmt.Errorf("line %d: expected %d values, got %d",
				lineNo, len(ds.Attributes), len(fields))
		}
		var row = make([]float64, len(fields))
		for i, field := range fields {
			row[i], err = parseValue(&ds.Attributes[i], field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNo)
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read arff")
	}
	if !inData {
		return nil, errors.New("arff: missing @data section")
	}
	return ds, nil
}

func splitKeyword(line string) (string, string) {
	var index = strings.IndexAny(line, " \t")
	if index < 0 {
		return line, ""
	}
	return line[:index], strings.TrimSpace(line[index+1:])
}

func parseAttribute(s string) (Attribute, error) {
	var name, rest, err = cutName(s)
	if err != nil {
		return Attribute{}, err
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		if !strings.HasSuffix(rest, "}") {
			return Attribute{}, fmt.Errorf("attribute %q: unterminated value list", name)
		}
		var values, err = splitRow(rest[1 : len(rest)-1])
		if err != nil {
			return Attribute{}, errors.Wrapf(err, "attribute %q", name)
		}
		return Attribute{Name: name, Kind: Nominal, Values: values}, nil
	}
	switch strings.ToLower(rest) {
	case "numeric", "real", "integer":
		return Attribute{Name: name, Kind: Numeric}, nil
	}
	return Attribute{}, fmt.Errorf("attribute %q: unsupported type %q", name, rest)
}

func cutName(s string) (name, rest string, err error) {
	if s == "" {
		return "", "", errors.New("attribute without name")
	}
	if q := s[0]; q == '\'' || q == '"' {
		var end = strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated name %s", s)
		}
		return s[1 : end+1], s[end+2:], nil
	}
	name, rest = splitKeyword(s)
	return name, rest, nil
}

// splitRow splits a comma separated line honouring single and double quotes.
func splitRow(line string) ([]string, error) {
	var (
		result []string
		sb     strings.Builder
		quote  byte
	)
	for i := 0; i < len(line); i++ {
		var c = line[i]
		switch {
		case quote != 0:
			if c == '\\' && i+1 < len(line) {
				i++
				sb.WriteByte(line[i])
			} else if c == quote {
				quote = 0
			} else {
				sb.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			result = append(result, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	result = append(result, strings.TrimSpace(sb.String()))
	return result, nil
}

func parseValue(attr *Attribute, field string) (float64, error) {
	if field == "?" || field == "" {
		return math.NaN(), nil
	}
	if attr.Kind == Nominal {
		var index, found = attr.ValueIndex(field)
		if !found {
			return 0, fmt.Errorf("attribute %q: unknown value %q", attr.Name, field)
		}
		return float64(index), nil
	}
	var v, err = strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("attribute %q: bad number %q", attr.Name, field)
	}
	return v, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
