package results

import (
	"fmt"
	"math"
	"sort"
)

// Record is one (configuration key, figure of merit) pair.
type Record struct {
	Key int     `json:"key"`
	FOM float64 `json:"fom"`
}

// ResultSet keeps the maximum figure of merit seen per configuration key.
type ResultSet struct {
	values map[int]float64
}

func NewResultSet() *ResultSet {
	return &ResultSet{values: make(map[int]float64)}
}

// Observe registers key with a figure of merit of 0.0 unless it is already present.
func (rs *ResultSet) Observe(key int) {
	if _, ok := rs.values[key]; !ok {
		rs.values[key] = 0.0
	}
}

// Update records fom for key, keeping the running maximum.
func (rs *ResultSet) Update(key int, fom float64) {
	current, ok := rs.values[key]
	if !ok || fom > current {
		rs.values[key] = fom
	}
}

func (rs *ResultSet) Get(key int) (float64, bool) {
	v, ok := rs.values[key]
	return v, ok
}

func (rs *ResultSet) Len() int {
	return len(rs.values)
}

// Keys returns the configuration keys in ascending order.
func (rs *ResultSet) Keys() []int {
	keys := make([]int, 0, len(rs.values))
	for k := range rs.values {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Records returns the set ordered by key.
func (rs *ResultSet) Records() []Record {
	keys := rs.Keys()
	records := make([]Record, len(keys))
	for i, k := range keys {
		records[i] = Record{Key: k, FOM: rs.values[k]}
	}
	return records
}

// Series normalizes every key by divisor and returns keys ascending with their
// values kept alongside. A divisor of 0 leaves keys unchanged.
func (rs *ResultSet) Series(name string, divisor float64) (Series, error) {
	if divisor < 0 || math.IsInf(divisor, 0) || math.IsNaN(divisor) {
		return Series{}, fmt.Errorf("sweep %s: divisor must be a finite non-negative number, got %v", name, divisor)
	}
	if divisor == 0 {
		divisor = 1
	}

	records := rs.Records()
	s := Series{
		Name:   name,
		Keys:   make([]float64, len(records)),
		Values: make([]float64, len(records)),
	}
	for i, r := range records {
		s.Keys[i] = float64(r.Key) / divisor
		s.Values[i] = r.FOM
	}
	return s, nil
}
