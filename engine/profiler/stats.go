package profiler

// statsWindowSize is the default number of samples a SectionStats retains.
const statsWindowSize = 100

// SectionStats accumulates timing samples for one named section over a rolling
// window. The average covers only the window; min and max are running extremes
// over the lifetime of the stats (until Reset).
type SectionStats struct {
	samples []float64
	index   int
	count   int
	sum     float64
	min     float64
	max     float64
}

// newSectionStats creates a SectionStats with the given window size.
// A window smaller than 1 falls back to the default.
func newSectionStats(window int) *SectionStats {
	if window < 1 {
		window = statsWindowSize
	}
	s := &SectionStats{samples: make([]float64, window)}
	s.Reset()
	return s
}

// AddSample records one timing sample in milliseconds. When the window is full
// the oldest sample rolls out of the average.
//
// Parameters:
//   - value: the sample value in milliseconds
func (s *SectionStats) AddSample(value float64) {
	if s.count >= len(s.samples) {
		s.sum -= s.samples[s.index]
	}
	s.samples[s.index] = value
	s.sum += value

	if value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}

	s.index = (s.index + 1) % len(s.samples)
	if s.count < len(s.samples) {
		s.count++
	}
}

// Average returns the mean of the samples currently in the window, or 0 when
// no samples have been recorded.
//
// Returns:
//   - float64: the windowed average in milliseconds
func (s *SectionStats) Average() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Min returns the smallest sample recorded since the last Reset, or 0 when no
// samples have been recorded.
//
// Returns:
//   - float64: the minimum sample in milliseconds
func (s *SectionStats) Min() float64 {
	if s.count == 0 {
		return 0
	}
	return s.min
}

// Max returns the largest sample recorded since the last Reset, or 0 when no
// samples have been recorded.
//
// Returns:
//   - float64: the maximum sample in milliseconds
func (s *SectionStats) Max() float64 {
	if s.count == 0 {
		return 0
	}
	return s.max
}

// Last returns the most recent sample, or 0 when no samples have been recorded.
//
// Returns:
//   - float64: the last sample in milliseconds
func (s *SectionStats) Last() float64 {
	if s.count == 0 {
		return 0
	}
	last := (s.index - 1 + len(s.samples)) % len(s.samples)
	return s.samples[last]
}

// SampleCount returns the number of samples currently in the window.
//
// Returns:
//   - int: the sample count, at most the window size
func (s *SectionStats) SampleCount() int {
	return s.count
}

// Reset clears all samples and running extremes.
func (s *SectionStats) Reset() {
	for i := range s.samples {
		s.samples[i] = 0
	}
	s.index = 0
	s.count = 0
	s.sum = 0
	s.min = 1e9
	s.max = 0
}
