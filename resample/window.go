package resample

import "math"

// smoothSize is the fixed length N of the occupancy-error ring buffer and
// its companion Hann window.
const smoothSize = 512

// hannWindow returns the N-point Hann window used to smooth the
// occupancy-error ring before it feeds the PI controller's proportional
// term: 0.5*(1-cos(2*pi*i/(N-1))).
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
