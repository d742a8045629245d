package algo

// MovingAverage returns the trailing mean of values over window points.
// The first window-1 points average over the points available so far,
// so the result has the same length as the input and no leading gap.
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	for i := range values {
		from := max(0, i-window+1)
		var sum float64
		for _, v := range values[from : i+1] {
			sum += v
		}
		out[i] = sum / float64(i+1-from)
	}
	return out
}
