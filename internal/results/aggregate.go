package results

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"scaling-bench/internal/logging"

	"github.com/sirupsen/logrus"
)

// DefaultInclude is the substring that marks a file as a benchmark result.
const DefaultInclude = "out"

const maxLineSize = 1 << 20

// Sweep describes one series of runs varying a single resource dimension.
type Sweep struct {
	Name      string
	Include   string // substring a result file name must contain
	Marker    string // dot-separated token preceding the configuration key, e.g. "ngpu"
	Predicate LinePredicate
	Divisor   float64 // keys are divided by this, e.g. GPUs per node
	File      string  // single two-column table instead of a directory of logs
}

// Collect builds the result set of a sweep from dir, or from the sweep's table
// file when one is set.
func Collect(sw Sweep, dir string) (*ResultSet, error) {
	if sw.File != "" {
		return ReadTable(sw.File)
	}
	return AggregateDir(dir, sw)
}

// AggregateDir scans dir for result files tagged with the sweep marker and
// keeps the maximum figure of merit per configuration key.
func AggregateDir(dir string, sw Sweep) (*ResultSet, error) {
	logger := logging.GetLogger()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(dir, err)
		}
		return nil, fmt.Errorf("failed to list results directory %s: %w", dir, err)
	}

	include := sw.Include
	if include == "" {
		include = DefaultInclude
	}

	rs := NewResultSet()
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.Contains(name, include) {
			continue
		}

		key, ok, err := KeyFromFilename(name, sw.Marker)
		if err != nil {
			return nil, withPath(err, filepath.Join(dir, name))
		}
		if !ok {
			continue
		}

		rs.Observe(key)
		matched, err := scanLog(filepath.Join(dir, name), key, sw.Predicate, rs)
		if err != nil {
			return nil, err
		}

		logger.WithFields(logrus.Fields{
			"sweep":   sw.Name,
			"file":    name,
			"key":     key,
			"matched": matched,
		}).Debug("Scanned result file")
	}

	logger.WithFields(logrus.Fields{
		"sweep": sw.Name,
		"dir":   dir,
		"keys":  rs.Len(),
	}).Debug("Aggregated sweep")
	return rs, nil
}

// KeyFromFilename returns the integer following marker in the dot-separated
// name. ok is false when the marker is absent.
func KeyFromFilename(name, marker string) (key int, ok bool, err error) {
	tokens := strings.Split(name, ".")
	idx := -1
	for i, t := range tokens {
		if t == marker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, false, nil
	}
	if idx == len(tokens)-1 {
		return 0, false, &ParseError{Kind: ErrMalformedFilename, Path: name, Token: marker,
			Err: fmt.Errorf("marker is the last token")}
	}

	raw := tokens[idx+1]
	key, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, &ParseError{Kind: ErrMalformedFilename, Path: name, Token: raw, Err: err}
	}
	if key <= 0 {
		return 0, false, &ParseError{Kind: ErrMalformedFilename, Path: name, Token: raw,
			Err: fmt.Errorf("configuration key must be positive")}
	}
	return key, true, nil
}

func scanLog(path string, key int, pred LinePredicate, rs *ResultSet) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, notFound(path, err)
		}
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	matched := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if !pred.Matches(fields) {
			continue
		}

		v, token, err := pred.Value(fields)
		if err != nil {
			return matched, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo, Token: token, Err: err}
		}
		rs.Update(key, v)
		matched++
	}
	if err := scanner.Err(); err != nil {
		return matched, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return matched, nil
}

func withPath(err error, path string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
	}
	return err
}
