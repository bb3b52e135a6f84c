package model

import "math"

// Distribution is an ordered sequence of scalar observations tied to one
// itemset and one metric kind. Append-only during accumulation, treated as
// immutable afterward. An empty distribution means "metric unavailable",
// never zero.
type Distribution struct {
	observations []float64
}

// NewDistribution creates an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{}
}

// Add appends one observation.
func (d *Distribution) Add(observation float64) {
	d.observations = append(d.observations, observation)
}

// Observations returns the recorded observations in insertion order. The
// returned slice is the backing store; callers must not mutate it.
func (d *Distribution) Observations() []float64 {
	return d.observations
}

// Len returns the number of observations.
func (d *Distribution) Len() int {
	return len(d.observations)
}

// Mean returns the arithmetic mean, or NaN for an empty distribution.
func (d *Distribution) Mean() float64 {
	if len(d.observations) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, observation := range d.observations {
		sum += observation
	}
	return sum / float64(len(d.observations))
}
