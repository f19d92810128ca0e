package testdata

import (
	"bufio"
	"compress/gzip"
	"embed"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed *.gz
var data embed.FS

func newScanner(t *testing.T, path string) *bufio.Scanner {
	f, err := data.Open(path)
	require.NoError(t, err)

	r, err := gzip.NewReader(f)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})

	scanner := bufio.NewScanner(r)
	t.Cleanup(func() {
		require.NoError(t, scanner.Err())
	})

	return scanner
}

// METAR yields one observation per line
func METAR(t *testing.T) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := newScanner(t, "metar.txt.gz")
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// TAF yields multi-line forecasts, which are separated by blank lines in
// the corpus
func TAF(t *testing.T) iter.Seq[string] {
	return func(yield func(string) bool) {
		scanner := newScanner(t, "taf.txt.gz")
		var lines []string

		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) != "" {
				lines = append(lines, scanner.Text())
				continue
			}
			if len(lines) > 0 && !yield(strings.Join(lines, "\n")) {
				return
			}
			lines = nil
		}

		if len(lines) > 0 {
			yield(strings.Join(lines, "\n"))
		}
	}
}
