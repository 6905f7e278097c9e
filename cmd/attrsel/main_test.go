package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeDataset creates a dataset where only "signal" predicts the class.
func writeDataset(t *testing.T) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("@relation toy\n")
	sb.WriteString("@attribute noise1 numeric\n")
	sb.WriteString("@attribute signal numeric\n")
	sb.WriteString("@attribute noise2 numeric\n")
	sb.WriteString("@attribute class {neg, pos}\n")
	sb.WriteString("@data\n")
	for i := 0; i < 20; i++ {
		var label = i % 2
		var class = []string{"neg", "pos"}[label]
		fmt.Fprintf(&sb, "%d,%d,%d,%s\n", (i/2)%5, label*10+i%3, (i/2)%3, class)
	}
	var path = filepath.Join(t.TempDir(), "toy.arff")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	var root = newRootCmd(&out)
	root.SetArgs(args)
	var err = root.ExecuteContext(context.Background())
	return out.String(), err
}

func commonArgs(t *testing.T) []string {
	return []string{
		"--data", writeDataset(t),
		"--classifier", "stump",
		"--folds", "2",
		"--log-level", "error",
	}
}

func TestExhaustiveCommand(t *testing.T) {
	var args = append([]string{"exhaustive", "--format", "yaml"}, commonArgs(t)...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	var doc struct {
		Attributes []string `yaml:"attributes"`
		Quality    float64  `yaml:"quality"`
		Evaluated  uint64   `yaml:"evaluated"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []string{"signal"}, doc.Attributes)
	assert.Equal(t, float64(20), doc.Quality)
	assert.Equal(t, uint64(7), doc.Evaluated)
}

func TestGreedyCommand(t *testing.T) {
	var args = append([]string{"greedy", "--concurrency", "3"}, commonArgs(t)...)
	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "signal added with total set quality 20\n"), out)
}

func TestSelectCommandWithStore(t *testing.T) {
	var store = filepath.Join(t.TempDir(), "scores")
	var args = append([]string{"select", "--store", store, "--attributes", "signal,noise2"}, commonArgs(t)...)
	first, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, first, "signal added")
	assert.Contains(t, first, "Best attribute set")

	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBenchmarkCommand(t *testing.T) {
	var args = append([]string{"benchmark", "stump", "centroid", "--format", "yaml"}, commonArgs(t)...)
	out, err := execute(t, args...)
	require.NoError(t, err)

	var doc struct {
		Classifiers []struct {
			Classifier string `yaml:"classifier"`
			Total      int    `yaml:"total"`
		} `yaml:"classifiers"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Classifiers, 2)
	assert.Equal(t, "stump", doc.Classifiers[0].Classifier)
	assert.Equal(t, "centroid", doc.Classifiers[1].Classifier)
	assert.Equal(t, 20, doc.Classifiers[0].Total)
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "exhaustive", "--data", filepath.Join(t.TempDir(), "absent.arff"))
	assert.Error(t, err)

	var args = append([]string{"greedy", "--attributes", "class"}, commonArgs(t)...)
	_, err = execute(t, args...)
	assert.Error(t, err)

	args = append([]string{"exhaustive"}, commonArgs(t)...)
	_, err = execute(t, append(args, "--folds", "1")...)
	assert.Error(t, err)
}
