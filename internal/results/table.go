package results

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// ReadTable reads a two-column "key fom" results file. Lines whose first token
// starts with '#' are comments.
func ReadTable(path string) (*ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(path, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rs := NewResultSet()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) < 2 {
			return nil, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo,
				Err: fmt.Errorf("expected 2 columns, got %d", len(fields))}
		}

		key, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo, Token: fields[0], Err: err}
		}
		if key <= 0 {
			return nil, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo, Token: fields[0],
				Err: fmt.Errorf("configuration key must be positive")}
		}
		fom, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo, Token: fields[1], Err: err}
		}
		if fom < 0 || !isFinite(fom) {
			return nil, &ParseError{Kind: ErrMalformedLogLine, Path: path, Line: lineNo, Token: fields[1],
				Err: fmt.Errorf("figure of merit must be a finite non-negative number")}
		}

		rs.Observe(key)
		rs.Update(key, fom)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rs, nil
}
