package results

import (
	"fmt"
	"math"
	"strconv"
)

// TokenMatch requires the whitespace-separated token at Pos to equal Equals.
type TokenMatch struct {
	Pos    int    `yaml:"pos" json:"pos"`
	Equals string `yaml:"equals" json:"equals"`
}

// LinePredicate locates the figure-of-merit line of a benchmark log by literal
// tokens at fixed positions, and names the position holding the value.
type LinePredicate struct {
	Tokens   []TokenMatch `yaml:"tokens" json:"tokens"`
	ValuePos int          `yaml:"value" json:"value"`
}

// FigureOfMerit matches "Figure of Merit ... <value>" summary lines.
var FigureOfMerit = LinePredicate{
	Tokens:   []TokenMatch{{Pos: 0, Equals: "Figure"}, {Pos: 2, Equals: "Merit"}},
	ValuePos: 6,
}

// AverageNumber matches "Average number of zones ... <value>" summary lines.
var AverageNumber = LinePredicate{
	Tokens:   []TokenMatch{{Pos: 0, Equals: "Average"}, {Pos: 1, Equals: "number"}},
	ValuePos: 7,
}

// Matches reports whether every configured token is present and equal.
// A line too short to hold a token does not match.
func (p LinePredicate) Matches(fields []string) bool {
	if len(fields) == 0 || len(p.Tokens) == 0 {
		return false
	}
	for _, tm := range p.Tokens {
		if tm.Pos < 0 || tm.Pos >= len(fields) || fields[tm.Pos] != tm.Equals {
			return false
		}
	}
	return true
}

// Value parses the token at ValuePos. The caller is expected to have checked Matches.
func (p LinePredicate) Value(fields []string) (float64, string, error) {
	if p.ValuePos < 0 || p.ValuePos >= len(fields) {
		return 0, "", fmt.Errorf("value position %d out of range for %d tokens", p.ValuePos, len(fields))
	}
	token := fields[p.ValuePos]
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, token, err
	}
	if !isFinite(v) {
		return 0, token, fmt.Errorf("value %q is not finite", token)
	}
	return v, token, nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (p LinePredicate) Validate() error {
	if len(p.Tokens) == 0 {
		return fmt.Errorf("predicate needs at least one token match")
	}
	for _, tm := range p.Tokens {
		if tm.Pos < 0 {
			return fmt.Errorf("token position %d is negative", tm.Pos)
		}
		if tm.Equals == "" {
			return fmt.Errorf("token at position %d has an empty literal", tm.Pos)
		}
	}
	if p.ValuePos < 0 {
		return fmt.Errorf("value position %d is negative", p.ValuePos)
	}
	return nil
}
