package results

// Series holds two aligned sequences ready for charting: normalized keys in
// ascending order and the figure of merit for each.
type Series struct {
	Name   string    `json:"name"`
	Keys   []float64 `json:"keys"`
	Values []float64 `json:"values"`
}

func (s Series) Len() int {
	return len(s.Keys)
}

// LinearReference is the figure of merit each key would reach if performance
// scaled perfectly from the smallest measured configuration.
func (s Series) LinearReference() []float64 {
	if len(s.Keys) == 0 || s.Keys[0] == 0 {
		return nil
	}
	ref := make([]float64, len(s.Keys))
	for i, k := range s.Keys {
		ref[i] = s.Values[0] * k / s.Keys[0]
	}
	return ref
}

// Last returns the final key and value, or zeros for an empty series.
func (s Series) Last() (float64, float64) {
	if len(s.Keys) == 0 {
		return 0, 0
	}
	return s.Keys[len(s.Keys)-1], s.Values[len(s.Values)-1]
}
