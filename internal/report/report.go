package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/ChizhovVadim/AttrSelect/internal/benchmark"
	"github.com/ChizhovVadim/AttrSelect/internal/dataset"
	"github.com/ChizhovVadim/AttrSelect/internal/search"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

type attributeQuality struct {
	Attribute string  `yaml:"attribute"`
	Index     int     `yaml:"index"`
	Quality   float64 `yaml:"quality"`
}

type exhaustiveDoc struct {
	Search     string   `yaml:"search"`
	Relation   string   `yaml:"relation,omitempty"`
	Attributes []string `yaml:"attributes"`
	Indices    []int    `yaml:"indices"`
	Quality    float64  `yaml:"quality"`
	Evaluated  uint64   `yaml:"evaluated"`
}

type greedyDoc struct {
	Search   string             `yaml:"search"`
	Relation string             `yaml:"relation,omitempty"`
	Steps    []attributeQuality `yaml:"steps"`
}

type benchmarkDoc struct {
	Relation    string            `yaml:"relation,omitempty"`
	Classifiers []benchmark.Entry `yaml:"classifiers"`
}

// Exhaustive prints the best subset found by an exhaustive search.
func Exhaustive(w io.Writer, format Format, ds *dataset.Dataset, res search.Result) error {
	if format == FormatYAML {
		return writeYAML(w, exhaustiveDoc{
			Search:     "exhaustive",
			Relation:   ds.Relation,
			Attributes: ds.Names(res.Subset),
			Indices:    res.Subset,
			Quality:    res.Quality,
			Evaluated:  res.Evaluated,
		})
	}
	fmt.Fprintf(w, "Best attribute set (%d subsets evaluated):\n", res.Evaluated)
	for _, name := range ds.Names(res.Subset) {
		fmt.Fprintln(w, "  "+name)
	}
	_, err := fmt.Fprintf(w, "Quality: %g\n", res.Quality)
	return err
}

// Greedy prints the accepted attributes in acceptance order.
func Greedy(w io.Writer, format Format, ds *dataset.Dataset, trace search.Trace) error {
	var steps = make([]attributeQuality, len(trace))
	for i, step := range trace {
		steps[i] = attributeQuality{
			Attribute: ds.Names([]int{step.Attribute})[0],
			Index:     step.Attribute,
			Quality:   step.Quality,
		}
	}
	if format == FormatYAML {
		return writeYAML(w, greedyDoc{
			Search:   "greedy",
			Relation: ds.Relation,
			Steps:    steps,
		})
	}
	if len(steps) == 0 {
		_, err := fmt.Fprintln(w, "No attributes selected")
		return err
	}
	for _, step := range steps {
		fmt.Fprintf(w, "%s added with total set quality %g\n", step.Attribute, step.Quality)
	}
	return nil
}

// Benchmark prints one row per classifier. ROC points are only part of the
// YAML output.
func Benchmark(w io.Writer, format Format, ds *dataset.Dataset, entries []benchmark.Entry) error {
	if format == FormatYAML {
		return writeYAML(w, benchmarkDoc{
			Relation:    ds.Relation,
			Classifiers: entries,
		})
	}
	var tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Classifier\tAUC\tSensitivity\tSpecificity\tMCC\tCompute time\t")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%5.3f\t%5.3f\t%5.3f\t%5.3f\t%v\t\n",
			e.Classifier, e.AUC, e.Sensitivity, e.Specificity, e.MCC,
			e.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

func writeYAML(w io.Writer, doc interface{}) error {
	var enc = yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
