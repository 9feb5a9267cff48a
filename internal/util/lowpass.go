package util

// LowPassFilter is an exponential moving average of a scalar signal.
// The first value after creation or Reset seeds the filter directly.
type LowPassFilter struct {
	alpha float64

	value float64
	ready bool
}

// NewLowPassFilter creates a filter with the smoothing factor alpha in (0..1],
// where 1 means no smoothing at all.
func NewLowPassFilter(alpha float64) *LowPassFilter {
	if alpha <= 0 || alpha > 1 {
		alpha = Coerce(alpha, 1e-6, 1)
	}
	return &LowPassFilter{
		alpha: alpha,
	}
}

// NewLowPassFilterFromTimeConstant creates a filter from a time constant tau
// and the sample period ts (both in seconds).
func NewLowPassFilterFromTimeConstant(tau float64, ts float64) *LowPassFilter {
	if tau <= 0 || ts <= 0 {
		return NewLowPassFilter(1)
	}
	return NewLowPassFilter(ts / (tau + ts))
}

// Filter feeds a new raw value into the filter and returns the smoothed value
func (f *LowPassFilter) Filter(raw float64) float64 {
	if !f.ready {
		f.value = raw
		f.ready = true
	} else {
		f.value = f.alpha*raw + (1-f.alpha)*f.value
	}
	return f.value
}

func (f *LowPassFilter) Reset() {
	f.value = 0
	f.ready = false
}

func (f *LowPassFilter) Value() float64 {
	return f.value
}

// Ready indicates whether the filter holds history from a previous value.
func (f *LowPassFilter) Ready() bool {
	return f.ready
}

func (f *LowPassFilter) Alpha() float64 {
	return f.alpha
}
