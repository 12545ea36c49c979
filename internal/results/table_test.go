package results

import (
	"errors"
	"math"
	"path/filepath"
	"strconv"
	"testing"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestReadTable_SkipsCommentsAndBuildsReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.txt", "# nodes fom\n1 10.0\n\n4 38.0\n8 75.0\n")

	rs, err := ReadTable(filepath.Join(dir, "results.txt"))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	s, err := rs.Series("gpu", 0)
	if err != nil {
		t.Fatalf("Series: %v", err)
	}
	ref := s.LinearReference()
	if len(ref) != 3 {
		t.Fatalf("expected 3 reference values, got %v", ref)
	}
	if math.Abs(ref[1]-40.0) > 1e-9 {
		t.Fatalf("expected reference 40.0 for key 4, got %v", ref[1])
	}
	if math.Abs(ref[2]-80.0) > 1e-9 {
		t.Fatalf("expected reference 80.0 for key 8, got %v", ref[2])
	}
}

func TestReadTable_HashWithoutSpaceIsComment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "results.txt", "#ngpu fom\n2 5\n")

	rs, err := ReadTable(filepath.Join(dir, "results.txt"))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if rs.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", rs.Len())
	}
}

func TestReadTable_Malformed(t *testing.T) {
	cases := map[string]string{
		"one column": "1\n",
		"bad key":    "one 10\n",
		"bad value":  "1 ten\n",
		"zero key":   "0 10\n",
		"negative":   "1 -5.0\n",
		"nan":        "2 NaN\n",
		"inf":        "2 +Inf\n",
	}
	for name, content := range cases {
		dir := t.TempDir()
		writeFile(t, dir, "results.txt", content)
		_, err := ReadTable(filepath.Join(dir, "results.txt"))
		if !errors.Is(err, ErrMalformedLogLine) {
			t.Fatalf("%s: expected ErrMalformedLogLine, got %v", name, err)
		}
	}
}

func TestReadTable_Missing(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "results.txt"))
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}
