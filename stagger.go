package motion

import "math"

// StaggerDelay returns the start offset of item i in a group of n items:
//
//	forward:    i * each
//	reverse:    (n - 1 - i) * each
//	center:     |i - (n-1)/2| * each
//	from index: |i - origin| * each
//
// It is a pure function of its arguments. Out-of-range indices are clamped
// into [0, n-1]; n <= 0 yields 0.
func StaggerDelay(i, n int, each float64, from StaggerFrom, origin int) float64 {
	if n <= 0 {
		return 0
	}
	i = clampIndex(i, n)
	switch from {
	case StaggerReverse:
		return float64(n-1-i) * each
	case StaggerCenter:
		return math.Abs(float64(i)-float64(n-1)/2) * each
	case StaggerFromIndex:
		return math.Abs(float64(i-clampIndex(origin, n))) * each
	default:
		return float64(i) * each
	}
}

// Delays returns the delay of every item in a group of n.
func (s Stagger) Delays(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = StaggerDelay(i, n, s.Each, s.From, s.Origin)
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
